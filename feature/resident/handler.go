package resident

import (
	"errors"

	"smartwarga/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for residents.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the resident routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/residents")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Put("/", h.HandleUpdate)
	group.Delete("/", h.HandleDelete)
}

// HandleList lists residents.
// @Summary List Residents
// @Description Lists residents, newest first. Search matches name, NIK or family-card number.
// @Tags residents
// @Produce json
// @Param search query string false "Search term"
// @Param gender query string false "Gender filter"
// @Param maritalStatus query string false "Marital status filter"
// @Success 200 {object} map[string]interface{}
// @Router /api/residents [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	if nik := c.Query("nik"); nik != "" {
		r, err := h.service.Get(c.Context(), nik)
		if err != nil {
			return h.fail(c, l, err)
		}
		return c.JSON(fiber.Map{"success": true, "data": r})
	}

	list, err := h.service.List(c.Context(), Filter{
		Search:        c.Query("search"),
		Gender:        c.Query("gender"),
		MaritalStatus: c.Query("maritalStatus"),
	})
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": list})
}

// HandleCreate registers a resident.
// @Summary Create Resident
// @Tags residents
// @Accept json
// @Produce json
// @Param body body Request true "Resident"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/residents [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	r := req.Model()
	if err := h.service.Create(c.Context(), r); err != nil {
		return h.fail(c, l, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": r})
}

// HandleUpdate overwrites a resident identified by NIK.
// @Summary Update Resident
// @Tags residents
// @Accept json
// @Produce json
// @Param body body Request true "Resident"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/residents [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	r := req.Model()
	if err := h.service.Update(c.Context(), r); err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": r})
}

// HandleDelete removes a resident.
// @Summary Delete Resident
// @Tags residents
// @Produce json
// @Param nik query string true "NIK"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/residents [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	nik := c.Query("nik")
	if nik == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "NIK wajib diisi"})
	}
	if err := h.service.Delete(c.Context(), nik); err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Data warga berhasil dihapus"})
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Data warga tidak ditemukan"})
	case errors.Is(err, ErrDuplicateNIK):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": err.Error()})
	default:
		l.Error("Resident request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
}
