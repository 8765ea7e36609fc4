package entity

import "errors"

// ErrAlreadySubscribed is returned when the email is already on the newsletter list.
var ErrAlreadySubscribed = errors.New("already subscribed")

// ContactMessage is a contact-form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Subscriber is a newsletter signup.
type Subscriber struct {
	Email     string
	FirstName string
}
