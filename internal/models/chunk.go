package models

import (
	"time"

	"github.com/google/uuid"
)

// Chunk is a bounded slice of a source document's text, the unit of
// indexing and retrieval. Immutable once stored.
type Chunk struct {
	ID        uuid.UUID `db:"id"`
	Source    string    `db:"source"` // original filename
	Page      int       `db:"page"`   // 1-based page number
	Content   string    `db:"content"`
	Embedding []float32 `db:"embedding"`
	CreatedAt time.Time `db:"created_at"`
}

// ScoredChunk is a retrieval hit with its similarity to the query.
type ScoredChunk struct {
	Chunk      Chunk
	Similarity float64
}
