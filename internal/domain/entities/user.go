package entities

// UserSession is the authenticated identity attached to a request.
// It is created from the external identity provider's claims and is
// read-only to the rest of the system.
type UserSession struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
}
