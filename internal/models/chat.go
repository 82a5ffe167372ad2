package models

import "strings"

// IntentLabel is the coarse category assigned to an incoming chat message.
type IntentLabel string

const (
	IntentQuestion IntentLabel = "question"
	IntentBooking  IntentLabel = "booking"
	IntentUnclear  IntentLabel = "unclear"
)

// BookingDraft holds the booking fields pulled out of a free-text message.
// Each field is independently absent; a nil or whitespace-only value counts
// as missing. A draft is never persisted directly, the booking API promotes
// complete drafts into bookings.
type BookingDraft struct {
	Resource *string `json:"resource"`
	Date     *string `json:"date"`
	Time     *string `json:"time"`
	Duration *string `json:"duration"`
}

// MissingFields returns the names of absent fields in a fixed order.
func (d BookingDraft) MissingFields() []string {
	var missing []string
	if !present(d.Resource) {
		missing = append(missing, "resource")
	}
	if !present(d.Date) {
		missing = append(missing, "date")
	}
	if !present(d.Time) {
		missing = append(missing, "time")
	}
	if !present(d.Duration) {
		missing = append(missing, "duration")
	}
	return missing
}

// Complete reports whether every booking field is present.
func (d BookingDraft) Complete() bool {
	return len(d.MissingFields()) == 0
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// Answer is a grounded model response with an optional citation in the
// form "document, p.N".
type Answer struct {
	Text   string
	Source *string
}
