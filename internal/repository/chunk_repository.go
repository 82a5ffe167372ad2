package repository

import (
	"context"
	"fmt"

	"smartassist/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// ChunkRepository stores document chunks and their embeddings in a
// pgvector-backed table. Writes happen only on the ingestion path; the
// query path is read-only, so no locking beyond the pool is needed.
type ChunkRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewChunkRepository(db *pgxpool.Pool, logger *zap.Logger) *ChunkRepository {
	return &ChunkRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ChunkRepository) Store(ctx context.Context, chunks []*models.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	query := squirrel.Insert("chunks").
		Columns("id", "source", "page", "content", "embedding", "created_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, chunk := range chunks {
		query = query.Values(chunk.ID, chunk.Source, chunk.Page, chunk.Content,
			pgvector.NewVector(chunk.Embedding), chunk.CreatedAt)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Search returns the k nearest chunks by cosine similarity, closest first.
// Squirrel cannot express the <=> operator in both the select list and the
// order clause, so this one stays raw SQL.
func (r *ChunkRepository) Search(ctx context.Context, embedding []float32, k int) ([]models.ScoredChunk, error) {
	if k <= 0 {
		k = 3
	}

	rows, err := r.db.Query(ctx, `
		SELECT id,
			source,
			page,
			content,
			1 - (embedding <=> $1) AS similarity
		FROM chunks
		ORDER BY embedding <=> $1, created_at
		LIMIT $2
	`, pgvector.NewVector(embedding), k)
	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}
	defer rows.Close()

	var results []models.ScoredChunk
	for rows.Next() {
		var sc models.ScoredChunk
		if err := rows.Scan(
			&sc.Chunk.ID, &sc.Chunk.Source, &sc.Chunk.Page, &sc.Chunk.Content, &sc.Similarity,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		results = append(results, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func (r *ChunkRepository) Count(ctx context.Context) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("chunks").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// DeleteBySource removes all chunks for one document, used when a file is
// re-ingested under the same name.
func (r *ChunkRepository) DeleteBySource(ctx context.Context, source string) error {
	query := squirrel.Delete("chunks").
		Where(squirrel.Eq{"source": source}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
