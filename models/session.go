package models

// View identifies the screen the client is showing.
type View string

const (
	ViewWelcome    View = "welcome"
	ViewGeneration View = "generation"
	ViewAdmin      View = "admin"
)

func (v View) Valid() bool {
	switch v {
	case ViewWelcome, ViewGeneration, ViewAdmin:
		return true
	}
	return false
}

// Session is a snapshot of the client's view and admin state.
type Session struct {
	View          View   `json:"view"`
	Authenticated bool   `json:"authenticated"`
	Token         string `json:"-"`
}
