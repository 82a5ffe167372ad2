package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"smartassist/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingStore persists bookings; implemented by repository.BookingRepository.
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	List(ctx context.Context, userID string) ([]*models.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus, remarks string) error
}

// Mailer sends a single HTML message; implemented by email.Sender.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// BookingService promotes confirmed booking drafts into persisted bookings
// and drives the approval flow: admin approval mail on creation, requester
// notification on decision, calendar event on approval.
type BookingService struct {
	store      BookingStore
	mailer     Mailer
	calendar   Calendar
	baseURL    string
	adminEmail string
	logger     *zap.Logger
}

func NewBookingService(store BookingStore, mailer Mailer, calendar Calendar, baseURL, adminEmail string, logger *zap.Logger) *BookingService {
	if calendar == nil {
		calendar = NoopCalendar{}
	}
	return &BookingService{
		store:      store,
		mailer:     mailer,
		calendar:   calendar,
		baseURL:    baseURL,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// Confirm persists a pending booking and asks the admin to approve it.
// Mail and calendar problems are logged but do not fail the booking.
func (s *BookingService) Confirm(ctx context.Context, userID, requester, resource, date, timeOfDay, duration string) (*models.Booking, error) {
	available, err := s.calendar.CheckAvailability(ctx, resource, date, timeOfDay, parseDurationHours(duration))
	if err != nil {
		s.logger.Warn("Calendar availability check failed, assuming available", zap.Error(err))
	} else if !available {
		s.logger.Info("Calendar shows a conflict, booking left for admin review",
			zap.String("resource", resource),
			zap.String("date", date),
		)
	}

	now := time.Now()
	booking := &models.Booking{
		ID:        uuid.New(),
		UserID:    userID,
		Requester: requester,
		Resource:  resource,
		Date:      date,
		Time:      timeOfDay,
		Duration:  duration,
		Status:    models.BookingStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := s.mailer.Send(
		s.adminEmail,
		fmt.Sprintf("[CSIS] Booking Request: %s on %s", booking.Resource, booking.Date),
		buildApprovalEmail(booking, s.baseURL),
	); err != nil {
		s.logger.Warn("Failed to send admin approval email",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	return booking, nil
}

func (s *BookingService) List(ctx context.Context, userID string) ([]*models.Booking, error) {
	return s.store.List(ctx, userID)
}

// UpdateStatus changes a booking's status with optional remarks.
func (s *BookingService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus, remarks string) error {
	return s.store.UpdateStatus(ctx, id, status, remarks)
}

// Decide applies a one-click approve/reject from the admin email link,
// notifies the requester, and on approval puts the slot on the calendar.
func (s *BookingService) Decide(ctx context.Context, id uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	booking, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateStatus(ctx, id, status, booking.Remarks); err != nil {
		return nil, err
	}
	booking.Status = status

	if err := s.mailer.Send(
		booking.UserID,
		fmt.Sprintf("[CSIS] Booking %s: %s", statusLabel(status), booking.Resource),
		buildStatusEmail(booking),
	); err != nil {
		s.logger.Warn("Failed to send requester notification",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	if status == models.BookingStatusApproved {
		eventID, err := s.calendar.CreateEvent(ctx, booking.Resource, booking.Requester,
			booking.Date, booking.Time, parseDurationHours(booking.Duration))
		if err != nil {
			s.logger.Warn("Failed to create calendar event", zap.Error(err))
		} else if eventID != "" {
			s.logger.Info("Calendar event created", zap.String("event_id", eventID))
		}
	}

	return booking, nil
}

func statusLabel(status models.BookingStatus) string {
	if status == models.BookingStatusApproved {
		return "Approved"
	}
	return "Rejected"
}

// parseDurationHours reads the leading number out of a duration phrase
// like "2 hours". Unparseable durations fall back to 2, the department's
// default slot length.
func parseDurationHours(duration string) int {
	fields := strings.Fields(strings.TrimSpace(duration))
	if len(fields) > 0 {
		if hours, err := strconv.Atoi(fields[0]); err == nil && hours > 0 {
			return hours
		}
	}
	return 2
}
