package model

// Identity is the authenticated user as seen by the test core. The
// session and submission layers consume only Email (and nil-ness); the
// remaining fields exist for the presentation layer.
type Identity struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PictureURL   string `json:"picture_url,omitempty"`
	IsRegistered bool   `json:"is_registered"`
}
