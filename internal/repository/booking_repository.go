package repository

import (
	"context"
	"errors"

	"smartassist/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBookingRepository(db *pgxpool.Pool, logger *zap.Logger) *BookingRepository {
	return &BookingRepository{
		db:     db,
		logger: logger,
	}
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	query := squirrel.Insert("bookings").
		Columns("id", "user_id", "requester", "resource", "date", "time", "duration", "status", "remarks", "created_at", "updated_at").
		Values(booking.ID, booking.UserID, booking.Requester, booking.Resource, booking.Date, booking.Time,
			booking.Duration, booking.Status, booking.Remarks, booking.CreatedAt, booking.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	query := squirrel.Select("id", "user_id", "requester", "resource", "date", "time", "duration", "status", "remarks", "created_at", "updated_at").
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var b models.Booking
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&b.ID, &b.UserID, &b.Requester, &b.Resource, &b.Date, &b.Time, &b.Duration, &b.Status, &b.Remarks, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &b, nil
}

func (r *BookingRepository) List(ctx context.Context, userID string) ([]*models.Booking, error) {
	query := squirrel.Select("id", "user_id", "requester", "resource", "date", "time", "duration", "status", "remarks", "created_at", "updated_at").
		From("bookings").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if userID != "" {
		query = query.Where(squirrel.Eq{"user_id": userID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.Requester, &b.Resource, &b.Date, &b.Time, &b.Duration, &b.Status, &b.Remarks, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, &b)
	}

	return bookings, rows.Err()
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus, remarks string) error {
	query := squirrel.Update("bookings").
		Set("status", status).
		Set("remarks", remarks).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}

	return nil
}
