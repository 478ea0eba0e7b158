package pagination

// OffsetRequest represents an offset-based pagination request
type OffsetRequest struct {
	Page int `json:"page" query:"page" validate:"min=1"`
	Size int `json:"size" query:"size" validate:"min=1,max=100"`
}

// NewOffsetRequest builds a normalized request for a one-based page
func NewOffsetRequest(page, size int) OffsetRequest {
	r := OffsetRequest{Page: page, Size: size}
	_ = r.Validate()
	return r
}

// Validate validates and normalizes offset pagination parameters
func (r *OffsetRequest) Validate() error {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Size <= 0 {
		r.Size = PageDefaultSize
	}
	if r.Size > PageMaxSize {
		r.Size = PageMaxSize
	}
	return nil
}

// Offset returns the number of items skipped before the requested page
func (r OffsetRequest) Offset() int {
	return (r.Page - 1) * r.Size
}

// Limit returns the number of items requested
func (r OffsetRequest) Limit() int {
	return r.Size
}

// ZeroBasedPage returns the page index for APIs that count from zero
func (r OffsetRequest) ZeroBasedPage() int {
	return r.Page - 1
}
