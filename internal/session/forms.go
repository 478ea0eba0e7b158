package session

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/DjordjeVuckovic/title-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/title-hunter/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// The password is checked trimmed but sent as typed.
type loginForm struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type signupForm struct {
	Name     string `validate:"required,min=2,max=120"`
	Email    string `validate:"required"`
	Password string `validate:"min=8"`
}

func loginPayload(email, password string) (domain.LoginPayload, error) {
	form := loginForm{Email: strings.TrimSpace(email), Password: strings.TrimSpace(password)}
	if err := validate.Struct(form); err != nil {
		msg := "Please enter your password."
		if fieldOf(err) == "Email" {
			msg = "Please enter an email to continue."
		}
		return domain.LoginPayload{}, apperr.NewValidationWrap(msg, err)
	}
	return domain.LoginPayload{Email: form.Email, Password: password}, nil
}

func signupPayload(name, email, password string) (domain.SignupPayload, error) {
	form := signupForm{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: strings.TrimSpace(password),
	}
	if form.Name == "" || form.Email == "" {
		return domain.SignupPayload{}, apperr.NewValidation("Please add your name and email to get started.")
	}
	if err := validate.Struct(form); err != nil {
		msg := "Please choose a password with at least 8 characters."
		if fieldOf(err) == "Name" {
			msg = "Name must be between 2 and 120 characters."
		}
		return domain.SignupPayload{}, apperr.NewValidationWrap(msg, err)
	}
	return domain.SignupPayload{Name: form.Name, Email: form.Email, Password: password}, nil
}

func fieldOf(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fieldErrs[0].Field()
	}
	return ""
}

// SignInMessage returns the user-facing message for a SignIn failure.
func SignInMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	if apperr.Is(err, apperr.InvalidCredentials) || statusOf(err) == http.StatusUnauthorized {
		return "Invalid email or password."
	}
	if msg := apperr.ServerMessage(err); msg != "" {
		return msg
	}
	return "We could not sign you in. Please try again."
}

// SignUpMessage returns the user-facing message for a SignUp failure.
func SignUpMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	if apperr.Is(err, apperr.Conflict) {
		return "That email is already registered. Try signing in instead."
	}
	if msg := apperr.ServerMessage(err); msg != "" {
		return msg
	}
	return "We could not create your account. Please try again."
}

func statusOf(err error) int {
	var ae *apperr.APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}
