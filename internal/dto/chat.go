package dto

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
	UserID  string `json:"user_id"`
}

// BookingDraftPayload carries the four extracted booking fields of a
// booking-type chat response.
type BookingDraftPayload struct {
	Resource string `json:"resource"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration string `json:"duration"`
}

// ChatResponse is the discriminated chat payload. Type is one of
// "unclear", "clarification", "booking", or "answer"; Booking is set only
// for booking responses and Source only for answer responses.
type ChatResponse struct {
	Type    string               `json:"type"`
	Content string               `json:"content"`
	Booking *BookingDraftPayload `json:"booking,omitempty"`
	Source  *string              `json:"source"`
}
