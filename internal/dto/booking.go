package dto

type ConfirmBookingRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	Requester string `json:"requester" validate:"required"`
	Resource  string `json:"resource" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Time      string `json:"time" validate:"required"`
	Duration  string `json:"duration" validate:"required"`
}

type ConfirmBookingResponse struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

type StatusUpdateRequest struct {
	Status  string `json:"status" validate:"required,oneof=pending approved rejected"`
	Remarks string `json:"remarks"`
}

type BookingResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Requester string `json:"requester"`
	Resource  string `json:"resource"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Duration  string `json:"duration"`
	Status    string `json:"status"`
	Remarks   string `json:"remarks"`
	CreatedAt string `json:"created_at"`
}
