package domain

// User is the signed-in identity.
type User struct {
	ID    *int64  `json:"id,omitempty"`
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// DisplayName returns the name, then the email, then "Anonymous".
func (u *User) DisplayName() string {
	switch {
	case u == nil:
		return "Anonymous"
	case u.Name != nil && *u.Name != "":
		return *u.Name
	case u.Email != nil && *u.Email != "":
		return *u.Email
	default:
		return "Anonymous"
	}
}

// AuthResponse is the envelope returned by the identity endpoints.
type AuthResponse struct {
	User *User `json:"user,omitempty"`
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SignupPayload struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}
