package handlers

import (
	"errors"
	"fmt"
	"time"

	"smartassist/internal/dto"
	"smartassist/internal/models"
	"smartassist/internal/repository"
	"smartassist/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingHandler struct {
	bookingService *service.BookingService
	logger         *zap.Logger
}

func NewBookingHandler(bookingService *service.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

// ConfirmBooking godoc
// @Summary Confirm a booking draft
// @Description Persist a chat booking draft and request admin approval by email
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body dto.ConfirmBookingRequest true "Booking details"
// @Success 201 {object} dto.ConfirmBookingResponse
// @Failure 400 {object} map[string]string
// @Router /bookings/confirm [post]
func (h *BookingHandler) ConfirmBooking(c *fiber.Ctx) error {
	var req dto.ConfirmBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.UserID == "" || req.Requester == "" || req.Resource == "" ||
		req.Date == "" || req.Time == "" || req.Duration == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "All booking fields are required",
		})
	}

	booking, err := h.bookingService.Confirm(c.Context(),
		req.UserID, req.Requester, req.Resource, req.Date, req.Time, req.Duration)
	if err != nil {
		h.logger.Error("Failed to confirm booking", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to confirm booking",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ConfirmBookingResponse{
		BookingID: booking.ID.String(),
		Status:    string(booking.Status),
	})
}

// ListBookings godoc
// @Summary List bookings
// @Description List all bookings, or one user's when user_id is given
// @Tags bookings
// @Produce json
// @Param user_id query string false "Filter by requester"
// @Success 200 {array} dto.BookingResponse
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *fiber.Ctx) error {
	bookings, err := h.bookingService.List(c.Context(), c.Query("user_id"))
	if err != nil {
		h.logger.Error("Failed to list bookings", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list bookings",
		})
	}

	responses := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = toBookingResponse(b)
	}
	return c.JSON(responses)
}

// UpdateBooking godoc
// @Summary Update a booking status
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.StatusUpdateRequest true "New status"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [patch]
func (h *BookingHandler) UpdateBooking(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking ID",
		})
	}

	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	status, ok := parseStatus(req.Status)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status",
		})
	}

	if err := h.bookingService.UpdateStatus(c.Context(), bookingID, status, req.Remarks); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Booking not found",
			})
		}
		h.logger.Error("Failed to update booking", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update booking",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// BookingAction handles the one-click approve/reject links embedded in the
// admin email and replies with a small HTML confirmation page.
func (h *BookingHandler) BookingAction(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.SendString("<h2>Booking not found.</h2>")
	}

	status, ok := parseStatus(c.Query("status"))
	if !ok || status == models.BookingStatusPending {
		return c.SendString("<h2>Invalid action.</h2>")
	}

	booking, err := h.bookingService.Decide(c.Context(), bookingID, status)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.SendString("<h2>Booking not found.</h2>")
		}
		h.logger.Error("Failed to apply booking action", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("<h2>Something went wrong.</h2>")
	}

	return c.SendString(actionPage(booking))
}

func actionPage(booking *models.Booking) string {
	color, icon, label := "#ef4444", "&#10007;", "Rejected"
	if booking.Status == models.BookingStatusApproved {
		color, icon, label = "#22c55e", "&#10003;", "Approved"
	}

	return fmt.Sprintf(`
    <html>
    <body style="font-family:Arial;display:flex;justify-content:center;align-items:center;height:100vh;margin:0;background:#f5f5f5;">
        <div style="text-align:center;background:white;padding:50px;border-radius:12px;box-shadow:0 2px 20px rgba(0,0,0,0.1);">
            <div style="font-size:60px;">%s</div>
            <h1 style="color:%s;">Booking %s</h1>
            <p style="color:#666;">The requester has been notified automatically.</p>
            <p style="color:#888;font-size:14px;">%s | %s | %s</p>
        </div>
    </body>
    </html>`,
		icon, color, label,
		booking.Resource, booking.Date, booking.Time,
	)
}

func parseStatus(s string) (models.BookingStatus, bool) {
	switch s {
	case "pending":
		return models.BookingStatusPending, true
	case "approved":
		return models.BookingStatusApproved, true
	case "rejected":
		return models.BookingStatusRejected, true
	default:
		return "", false
	}
}

func toBookingResponse(b *models.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		ID:        b.ID.String(),
		UserID:    b.UserID,
		Requester: b.Requester,
		Resource:  b.Resource,
		Date:      b.Date,
		Time:      b.Time,
		Duration:  b.Duration,
		Status:    string(b.Status),
		Remarks:   b.Remarks,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}
