package handlers // handlers/panel paketi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"uyetakip.app/configs/configslog"
	"uyetakip.app/models"
	"uyetakip.app/pkg/queryparams"
	"uyetakip.app/services"
)

// PanelCharityHandler yardım etkinliği ve katılım defteri uçları.
type PanelCharityHandler struct {
	service services.ICharityService
}

// NewPanelCharityHandler yeni bir PanelCharityHandler örneği oluşturur.
func NewPanelCharityHandler() *PanelCharityHandler {
	return &PanelCharityHandler{
		service: services.NewCharityService(),
	}
}

type charityEventRequest struct {
	Name         string           `json:"name"`
	Date         time.Time        `json:"date"`
	Description  string           `json:"description"`
	Participants []models.Subject `json:"participants"`
}

type participantRequest struct {
	Participant models.Subject `json:"participant"`
}

// ListEvents etkinlikleri sayfalayarak listeler.
func (h *PanelCharityHandler) ListEvents(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("Panel ListEvents: Query parse error", zap.Error(err))
	}
	params.Validate()

	result, err := h.service.ListCharityEvents(c.UserContext(), params)
	if err != nil {
		configslog.Log.Error("Panel - ListEvents Error", zap.Error(err))
		return jsonError(c, err)
	}
	return c.JSON(result)
}

// GetEvent etkinliği katılımcılarıyla getirir.
func (h *PanelCharityHandler) GetEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, err)
	}
	event, err := h.service.GetCharityEventByID(c.UserContext(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(event)
}

// CreateEvent yeni etkinlik ve katılımcı kümesi oluşturur.
func (h *PanelCharityHandler) CreateEvent(c *fiber.Ctx) error {
	var req charityEventRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, services.ErrInvalidInput)
	}

	event, err := h.service.CreateCharityEvent(c.UserContext(), req.Name, req.Date, req.Description, req.Participants)
	if err != nil {
		configslog.Log.Error("Panel - CreateEvent Error", zap.String("name", req.Name), zap.Error(err))
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// SetParticipants etkinliğin katılımcı kümesini değiştirir.
func (h *PanelCharityHandler) SetParticipants(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, err)
	}
	var req charityEventRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, services.ErrInvalidInput)
	}

	event, err := h.service.SetParticipants(c.UserContext(), id, req.Participants)
	if err != nil {
		configslog.Log.Error("Panel - SetParticipants Error", zap.Uint("id", id), zap.Error(err))
		return jsonError(c, err)
	}
	return c.JSON(event)
}

// AddParticipant etkinliğe katılımcı ekler.
func (h *PanelCharityHandler) AddParticipant(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, err)
	}
	var req participantRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, services.ErrInvalidInput)
	}

	if err := h.service.AddParticipant(c.UserContext(), id, req.Participant); err != nil {
		configslog.Log.Error("Panel - AddParticipant Error", zap.Uint("id", id), zap.Error(err))
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveParticipant etkinlikten katılımcı çıkarır.
func (h *PanelCharityHandler) RemoveParticipant(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, err)
	}
	var req participantRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, services.ErrInvalidInput)
	}

	if err := h.service.RemoveParticipant(c.UserContext(), id, req.Participant); err != nil {
		configslog.Log.Error("Panel - RemoveParticipant Error", zap.Uint("id", id), zap.Error(err))
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteEvent etkinliği siler.
func (h *PanelCharityHandler) DeleteEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, err)
	}
	if err := h.service.DeleteCharityEvent(c.UserContext(), id); err != nil {
		configslog.Log.Error("Panel - DeleteEvent Error", zap.Uint("id", id), zap.Error(err))
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
