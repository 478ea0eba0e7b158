package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/DjordjeVuckovic/title-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/title-hunter/internal/domain"
)

var (
	// ErrSignInRequired is returned before any request when nobody is signed in.
	ErrSignInRequired = errors.New("sign in required")
	// ErrSessionPending is returned when the session did not resolve in time.
	ErrSessionPending = errors.New("session not resolved")

	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Poster sends a review to the catalog API.
type Poster interface {
	AddReview(ctx context.Context, titleID int64, payload domain.ReviewPayload) (*domain.Review, error)
}

// Identity reports the signed-in user, if any. User blocks until the
// identity is known.
type Identity interface {
	User(ctx context.Context) (*domain.User, error)
}

// Draft is a review being written.
type Draft struct {
	Rating int
	Text   string
}

// Payload validates the draft and returns the body to submit.
// The text is trimmed first; validation errors never reach the network.
func (d Draft) Payload() (domain.ReviewPayload, error) {
	payload := domain.ReviewPayload{Rating: d.Rating, Review: strings.TrimSpace(d.Text)}

	if err := validate.Struct(payload); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return payload, apperr.NewValidationWrap(draftMessage(fieldErrs[0]), err)
		}
		return payload, apperr.NewValidationWrap("Invalid review", err)
	}
	return payload, nil
}

func draftMessage(fe validator.FieldError) string {
	switch {
	case fe.Field() == "Rating":
		return "Rating must be between 1 and 10."
	case fe.Tag() == "max":
		return "Reviews are limited to 1000 characters."
	default:
		return "Please add a few words about your take."
	}
}

// Submitter checks the session and the draft, then posts the review.
type Submitter struct {
	poster   Poster
	identity Identity
	log      *slog.Logger
}

func NewSubmitter(poster Poster, identity Identity, log *slog.Logger) *Submitter {
	if log == nil {
		log = slog.Default()
	}
	return &Submitter{poster: poster, identity: identity, log: log}
}

// Submit posts the draft for a title. It waits for the session to resolve;
// without a signed-in user it fails with ErrSignInRequired and sends nothing.
func (s *Submitter) Submit(ctx context.Context, titleID int64, draft Draft) (*domain.Review, error) {
	if s.identity == nil {
		return nil, ErrSignInRequired
	}
	user, err := s.identity.User(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionPending, err)
	}
	if user == nil {
		return nil, ErrSignInRequired
	}

	payload, err := draft.Payload()
	if err != nil {
		return nil, err
	}

	saved, err := s.poster.AddReview(ctx, titleID, payload)
	if err != nil {
		s.log.Debug("Review submission failed", "title_id", titleID, "kind", apperr.KindOf(err), "error", err)
		return nil, fmt.Errorf("add review: %w", err)
	}

	s.log.Info("Review saved", "title_id", titleID, "rating", payload.Rating)
	return saved, nil
}

// SubmitMessage returns the user-facing message for a Submit failure.
func SubmitMessage(err error) string {
	if err == nil {
		return "Review saved. Thanks for sharing!"
	}
	if errors.Is(err, ErrSignInRequired) {
		return "Sign in to leave a review."
	}
	if errors.Is(err, ErrSessionPending) {
		return "Still checking your session. Please try again."
	}

	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}

	msg := apperr.ServerMessage(err)
	switch apperr.KindOf(err) {
	case apperr.Unauthenticated:
		return "Please sign in to post a review."
	case apperr.Forbidden:
		if msg != "" && msg != "Forbidden" && !strings.HasPrefix(msg, "Request failed") {
			return msg
		}
		return "Reviews are currently disabled."
	}
	if msg != "" {
		return msg
	}
	return "Unable to submit your review. Please try again."
}
