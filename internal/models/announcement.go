package models

import (
	"time"

	"github.com/google/uuid"
)

type Announcement struct {
	ID        uuid.UUID `db:"id"`
	Content   string    `db:"content"`
	PostedBy  string    `db:"posted_by"`
	CreatedAt time.Time `db:"created_at"`
}
