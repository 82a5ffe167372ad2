package models

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusApproved BookingStatus = "approved"
	BookingStatusRejected BookingStatus = "rejected"
)

type Booking struct {
	ID        uuid.UUID     `db:"id"`
	UserID    string        `db:"user_id"` // requester contact, also the notification address
	Requester string        `db:"requester"`
	Resource  string        `db:"resource"`
	Date      string        `db:"date"` // ISO-8601 date as captured from the draft
	Time      string        `db:"time"` // 12-hour "H:MM AM/PM"
	Duration  string        `db:"duration"`
	Status    BookingStatus `db:"status"`
	Remarks   string        `db:"remarks"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}
