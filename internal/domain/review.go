package domain

type Review struct {
	ID        int64   `json:"id"`
	Rating    int     `json:"rating"`
	Review    string  `json:"review"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
	UserID    *int64  `json:"userId,omitempty"`
	UserName  *string `json:"userName,omitempty"`
}

// AuthorName returns the reviewer name or "Anonymous".
func (r Review) AuthorName() string {
	if r.UserName == nil || *r.UserName == "" {
		return "Anonymous"
	}
	return *r.UserName
}

// ReviewPayload is the body of a review submission.
type ReviewPayload struct {
	Rating int    `json:"rating" validate:"min=1,max=10"`
	Review string `json:"review" validate:"required,max=1000"`
}
