package handler

import (
	"io"
	"path/filepath"

	"flashgen/internal/domain"
	"flashgen/internal/dto"
	"flashgen/internal/export"
	"flashgen/internal/extract"
	"flashgen/internal/logger"
	"flashgen/internal/prompt"
	"flashgen/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FlashcardHandler handles flashcard generation and export requests.
type FlashcardHandler struct {
	service   domain.FlashcardService
	validator *validation.Validator
	exportDir string
}

// NewFlashcardHandler creates a new FlashcardHandler instance. Export
// files are written under exportDir.
func NewFlashcardHandler(service domain.FlashcardService, validator *validation.Validator, exportDir string) *FlashcardHandler {
	return &FlashcardHandler{
		service:   service,
		validator: validator,
		exportDir: exportDir,
	}
}

// Generate handles POST /api/flashcards
func (h *FlashcardHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	if errs := h.validator.ValidateGenerateRequest(req.Content, req.Subject); len(errs) > 0 {
		return errs
	}

	return h.generate(c, req.Content, req.Subject)
}

// GenerateFromUpload handles POST /api/flashcards/upload. It accepts a
// multipart form with a "file" (.pdf or .txt) and an optional
// "subject" field.
func (h *FlashcardHandler) GenerateFromUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("file")}
	}

	f, err := fileHeader.Open()
	if err != nil {
		return domain.NewInternalError("failed to open uploaded file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.NewInternalError("failed to read uploaded file", err)
	}

	content, err := extract.FromUpload(fileHeader.Filename, data)
	if err != nil {
		return err
	}

	subject := c.FormValue("subject")
	if errs := h.validator.ValidateGenerateRequest(content, subject); len(errs) > 0 {
		return errs
	}

	return h.generate(c, content, subject)
}

func (h *FlashcardHandler) generate(c *fiber.Ctx, content, subject string) error {
	log := logger.Get()

	cards, err := h.service.GenerateWithProgress(c.UserContext(), content, subject,
		func(completed, total int) {
			log.Debug("Generation progress",
				zap.String("path", c.Path()),
				zap.Int("completed", completed),
				zap.Int("total", total),
			)
		})
	if err != nil {
		return err
	}

	groups := domain.GroupByTopic(cards)
	return c.JSON(dto.GenerateResponse{
		Subject:    subject,
		CardCount:  len(cards),
		Flashcards: cards,
		Topics:     dto.NewTopicGroups(groups),
	})
}

// Export handles POST /api/flashcards/export. The card list may have
// been edited by the caller after generation; each record is
// re-validated before writing.
func (h *FlashcardHandler) Export(c *fiber.Ctx) error {
	var req dto.ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	if errs := h.validator.ValidateExportRequest(req.Format, len(req.Flashcards)); len(errs) > 0 {
		return errs
	}
	for _, card := range req.Flashcards {
		if err := card.Validate(); err != nil {
			return err
		}
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return err
	}

	filename, errs := h.validator.SanitizeFilename(req.Filename)
	if len(errs) > 0 {
		return errs
	}
	if filename == "" {
		filename = format.DefaultFilename()
	}

	path, err := export.Export(format, req.Flashcards, filepath.Join(h.exportDir, filename))
	if err != nil {
		return err
	}

	logger.Get().Info("Exported flashcards",
		zap.String("file", path),
		zap.String("format", string(format)),
		zap.Int("card_count", len(req.Flashcards)),
	)

	return c.JSON(dto.ExportResponse{
		File:      path,
		CardCount: len(req.Flashcards),
	})
}

// Subjects handles GET /api/subjects
func (h *FlashcardHandler) Subjects(c *fiber.Ctx) error {
	subjects := prompt.Subjects()
	infos := make([]dto.SubjectInfo, 0, len(subjects))
	for _, name := range subjects {
		infos = append(infos, dto.SubjectInfo{Name: name, Guide: prompt.GuideFor(name)})
	}
	return c.JSON(dto.SubjectsResponse{Subjects: infos})
}
