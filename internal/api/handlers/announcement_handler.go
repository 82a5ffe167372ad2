package handlers

import (
	"time"

	"smartassist/internal/dto"
	"smartassist/internal/models"
	"smartassist/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AnnouncementHandler struct {
	annRepo *repository.AnnouncementRepository
	logger  *zap.Logger
}

func NewAnnouncementHandler(annRepo *repository.AnnouncementRepository, logger *zap.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		annRepo: annRepo,
		logger:  logger,
	}
}

// CreateAnnouncement godoc
// @Summary Post an announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Param request body dto.CreateAnnouncementRequest true "Announcement"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /announcements [post]
func (h *AnnouncementHandler) CreateAnnouncement(c *fiber.Ctx) error {
	var req dto.CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Content is required",
		})
	}
	if req.PostedBy == "" {
		req.PostedBy = "Admin"
	}

	ann := &models.Announcement{
		ID:        uuid.New(),
		Content:   req.Content,
		PostedBy:  req.PostedBy,
		CreatedAt: time.Now(),
	}

	if err := h.annRepo.Create(c.Context(), ann); err != nil {
		h.logger.Error("Failed to create announcement", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create announcement",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": ann.ID.String()})
}

// ListAnnouncements godoc
// @Summary List announcements, newest first
// @Tags announcements
// @Produce json
// @Success 200 {array} dto.AnnouncementResponse
// @Router /announcements [get]
func (h *AnnouncementHandler) ListAnnouncements(c *fiber.Ctx) error {
	announcements, err := h.annRepo.List(c.Context())
	if err != nil {
		h.logger.Error("Failed to list announcements", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list announcements",
		})
	}

	responses := make([]dto.AnnouncementResponse, len(announcements))
	for i, ann := range announcements {
		responses[i] = dto.AnnouncementResponse{
			ID:        ann.ID.String(),
			Content:   ann.Content,
			PostedBy:  ann.PostedBy,
			CreatedAt: ann.CreatedAt.Format(time.RFC3339),
		}
	}
	return c.JSON(responses)
}
