package repository

import (
	"context"

	"smartassist/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type AnnouncementRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAnnouncementRepository(db *pgxpool.Pool, logger *zap.Logger) *AnnouncementRepository {
	return &AnnouncementRepository{
		db:     db,
		logger: logger,
	}
}

func (r *AnnouncementRepository) Create(ctx context.Context, ann *models.Announcement) error {
	query := squirrel.Insert("announcements").
		Columns("id", "content", "posted_by", "created_at").
		Values(ann.ID, ann.Content, ann.PostedBy, ann.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *AnnouncementRepository) List(ctx context.Context) ([]*models.Announcement, error) {
	query := squirrel.Select("id", "content", "posted_by", "created_at").
		From("announcements").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []*models.Announcement
	for rows.Next() {
		var ann models.Announcement
		if err := rows.Scan(&ann.ID, &ann.Content, &ann.PostedBy, &ann.CreatedAt); err != nil {
			return nil, err
		}
		announcements = append(announcements, &ann)
	}

	return announcements, rows.Err()
}
