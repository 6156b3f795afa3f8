// Package dialogue holds the per-chat conversation state: which
// multi-step flow the chat is in and the data gathered so far.
package dialogue

import "github.com/yourusername/eventos-bot/models"

// State is the authoritative marker of what input a chat owes the bot
// next. It is a closed set: each variant carries exactly the data its
// step needs, so states with impossible data combinations cannot be
// constructed.
type State interface {
	isState()
}

// Start is the state of a chat that has never talked to the bot.
type Start struct{}

// CheckAuthChoice waits for the user to choose between registering
// and logging in.
type CheckAuthChoice struct{}

// RegisterEmail waits for the email of a new account.
type RegisterEmail struct{}

// RegisterPassword waits for the password of a new account.
type RegisterPassword struct {
	Email string
}

// ConfirmPassword waits for the password to be typed again.
type ConfirmPassword struct {
	Email    string
	Password string
}

// LoginEmail waits for the email of an existing account.
type LoginEmail struct{}

// LoginPassword waits for the password of an existing account.
type LoginPassword struct {
	Email string
}

// EnterCommand is the authenticated idle state: the chat accepts
// explicit commands.
type EnterCommand struct{}

// EventCreation is the guided event creation flow, one field per step.
type EventCreation struct {
	Step  CreationStep
	Draft models.EventDraft
}

func (Start) isState()            {}
func (CheckAuthChoice) isState()  {}
func (RegisterEmail) isState()    {}
func (RegisterPassword) isState() {}
func (ConfirmPassword) isState()  {}
func (LoginEmail) isState()       {}
func (LoginPassword) isState()    {}
func (EnterCommand) isState()     {}
func (EventCreation) isState()    {}

// CreationStep enumerates the event creation steps in order.
type CreationStep int

const (
	EnterTitle CreationStep = iota
	EnterDescription
	EnterDate
	EnterDuration
	EnterLocation
	EnterMaxCapacity
	EnterPrice
	EnterCategory
)

func (s CreationStep) String() string {
	switch s {
	case EnterTitle:
		return "enter_title"
	case EnterDescription:
		return "enter_description"
	case EnterDate:
		return "enter_date"
	case EnterDuration:
		return "enter_duration"
	case EnterLocation:
		return "enter_location"
	case EnterMaxCapacity:
		return "enter_max_capacity"
	case EnterPrice:
		return "enter_price"
	case EnterCategory:
		return "enter_category"
	default:
		return "unknown"
	}
}
