package tui

import (
	"github.com/MKhiriev/go-cloud-sync/models"
)

// NavigateTo switches the root model to Page. A non-nil Payload is
// delivered to the new page as its first message.
type NavigateTo struct {
	Page    string
	Payload any
}

// LoginResult finishes the login flow.
type LoginResult struct {
	Username string
	Err      error
}

// RegisterSuccessNotice is shown on the menu after a successful sign-up.
type RegisterSuccessNotice struct {
	Username string
}

type registerDoneMsg struct {
	username string
	err      error
}

type availabilityMsg struct {
	username  string
	available bool
	err       error
}

// changeMsg carries a collection event from the observer into the program.
type changeMsg struct {
	event   models.EventType
	payload any
}

// syncErrMsg carries an error routed to the collection's error handler.
type syncErrMsg struct {
	err error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
