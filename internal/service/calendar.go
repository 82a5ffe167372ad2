package service

import "context"

// Calendar is the narrow contract to the department's resource calendar.
// OAuth plumbing and free/busy lookups live outside this service behind
// this interface.
type Calendar interface {
	// CheckAvailability reports whether the resource is free for the slot.
	CheckAvailability(ctx context.Context, resource, date, timeOfDay string, durationHours int) (bool, error)

	// CreateEvent books the slot on the calendar and returns the event ID.
	CreateEvent(ctx context.Context, resource, requester, date, timeOfDay string, durationHours int) (string, error)
}

// NoopCalendar is the default Calendar when no calendar integration is
// configured. It fails open: every slot reads as available.
type NoopCalendar struct{}

func (NoopCalendar) CheckAvailability(ctx context.Context, resource, date, timeOfDay string, durationHours int) (bool, error) {
	return true, nil
}

func (NoopCalendar) CreateEvent(ctx context.Context, resource, requester, date, timeOfDay string, durationHours int) (string, error) {
	return "", nil
}
