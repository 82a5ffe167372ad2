package handlers

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"smartassist/internal/dto"
	"smartassist/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DocumentHandler struct {
	ingestService *service.IngestService
	uploadDir     string
	logger        *zap.Logger
}

func NewDocumentHandler(ingestService *service.IngestService, uploadDir string, logger *zap.Logger) *DocumentHandler {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		logger.Warn("Failed to create upload directory", zap.Error(err))
	}

	return &DocumentHandler{
		ingestService: ingestService,
		uploadDir:     uploadDir,
		logger:        logger,
	}
}

// UploadDocument godoc
// @Summary Upload and index a PDF document
// @Description Split a department PDF into chunks and add them to the knowledge base
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Success 201 {object} dto.IngestDocumentResponse
// @Failure 400 {object} map[string]string
// @Router /documents [post]
func (h *DocumentHandler) UploadDocument(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only PDF documents are supported",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read file",
		})
	}

	// Keep a copy on disk so documents can be re-ingested later
	destPath := filepath.Join(h.uploadDir, filepath.Base(file.Filename))
	if err := os.WriteFile(destPath, data, 0644); err != nil {
		h.logger.Warn("Failed to save uploaded document", zap.Error(err))
	}

	chunks, err := h.ingestService.IngestPDF(c.Context(), data, file.Filename)
	if err != nil {
		h.logger.Error("Failed to ingest document", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to ingest document",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.IngestDocumentResponse{
		Status:   "indexed",
		Filename: file.Filename,
		Chunks:   chunks,
	})
}
