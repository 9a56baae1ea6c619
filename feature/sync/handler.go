package sync

import (
	"encoding/json"
	"errors"
	"strings"

	"smartwarga/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the /api/sync resource. The action parameter selects the
// operation.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/sync")
	group.Get("/", h.HandleGet)
	group.Post("/", h.HandlePost)
	group.Delete("/", h.HandleDelete)
}

// actionRequest is the body of POST /api/sync.
type actionRequest struct {
	Action    string `json:"action"`
	SheetURL  string `json:"sheetUrl"`
	SheetName string `json:"sheetName"`
	// ServiceAccount is the key file, either as a JSON object or as a string
	// holding the JSON text.
	ServiceAccount json.RawMessage `json:"serviceAccount"`
	AutoSync       bool            `json:"autoSync"`
	SyncInterval   int             `json:"syncInterval"`
	DryRun         bool            `json:"dryRun"`
}

func (r *actionRequest) credential() (string, error) {
	raw := strings.TrimSpace(string(r.ServiceAccount))
	if raw == "" || raw == "null" {
		return "", nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	return raw, nil
}

// HandleGet returns logs, an export, snapshots or the current config.
// @Summary Sync status
// @Description Without action returns the active config (or null). action=logs returns recent runs, action=export downloads all residents as CSV, action=snapshots lists archived CSV snapshots.
// @Tags sync
// @Produce json
// @Produce text/csv
// @Param action query string false "logs | export | snapshots"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/sync [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	ctx := c.Context()

	switch c.Query("action") {
	case "logs":
		logs, err := h.service.Logs(ctx)
		if err != nil {
			return h.internal(c, l, err)
		}
		return c.JSON(fiber.Map{"success": true, "data": logs})

	case "export":
		filename, content, err := h.service.Export(ctx)
		if err != nil {
			return h.internal(c, l, err)
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.SendString(content)

	case "snapshots":
		snaps, err := h.service.Snapshots(ctx)
		if err != nil {
			return h.internal(c, l, err)
		}
		return c.JSON(fiber.Map{"success": true, "data": snaps})

	case "":
		cfg, err := h.service.GetConfig(ctx)
		if err != nil {
			return h.internal(c, l, err)
		}
		return c.JSON(fiber.Map{"success": true, "data": cfg})

	default:
		return h.badRequest(c, "Aksi tidak dikenal: "+c.Query("action"))
	}
}

// HandlePost runs a sync action.
// @Summary Run sync action
// @Description Runs test, connect, push, pull, sync (alias of push) or disconnect. Push overwrites the whole sheet with the local data.
// @Tags sync
// @Accept json
// @Produce json
// @Param body body actionRequest true "Action"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/sync [post]
func (h *Handler) HandlePost(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	ctx := c.Context()

	var req actionRequest
	if err := c.BodyParser(&req); err != nil {
		return h.badRequest(c, "Invalid request body")
	}
	credential, err := req.credential()
	if err != nil {
		return h.badRequest(c, "Service Account JSON tidak valid")
	}

	l.Info("Sync action requested", zap.String("action", req.Action))

	switch req.Action {
	case "test":
		res := h.service.Test(ctx, req.SheetURL, credential)
		return c.JSON(fiber.Map{"success": res.Success, "message": res.Message, "data": res})

	case "connect":
		res := h.service.Connect(ctx, ConnectRequest{
			SheetURL:       req.SheetURL,
			SheetName:      req.SheetName,
			ServiceAccount: credential,
			AutoSync:       req.AutoSync,
			SyncInterval:   req.SyncInterval,
		})
		return c.JSON(fiber.Map{"success": res.Success, "message": res.Message, "data": res})

	case "push", "sync":
		return h.result(c, h.service.Push(ctx))

	case "pull":
		return h.result(c, h.service.Pull(ctx, PullOptions{DryRun: req.DryRun}))

	case "disconnect":
		return h.result(c, h.service.Disconnect(ctx))

	default:
		return h.badRequest(c, "Aksi tidak dikenal: "+req.Action)
	}
}

// HandleDelete removes the sync configuration.
// @Summary Disconnect sheet
// @Tags sync
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/sync [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	return h.result(c, h.service.Disconnect(c.Context()))
}

func (h *Handler) result(c *fiber.Ctx, res Result) error {
	body := fiber.Map{"success": res.Success, "message": res.Message, "data": res}
	if !res.Success {
		body["error"] = res.Message
	}
	return c.JSON(body)
}

func (h *Handler) badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": msg})
}

func (h *Handler) internal(c *fiber.Ctx, l *zap.Logger, err error) error {
	l.Error("Sync request failed", zap.Error(err))
	if errors.Is(err, ErrNotConfigured) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": err.Error()})
}
