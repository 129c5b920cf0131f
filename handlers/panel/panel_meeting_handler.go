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

// PanelMeetingHandler toplantı yönetimi uçları.
type PanelMeetingHandler struct {
	service services.IMeetingService
}

// NewPanelMeetingHandler yeni bir PanelMeetingHandler örneği oluşturur.
func NewPanelMeetingHandler() *PanelMeetingHandler {
	return &PanelMeetingHandler{
		service: services.NewMeetingService(),
	}
}

type meetingRequest struct {
	Date     time.Time          `json:"date"`
	Type     models.MeetingType `json:"type"`
	Location string             `json:"location"`
	Notes    string             `json:"notes"`
}

// ListMeetings toplantıları sayfalayarak listeler.
func (h *PanelMeetingHandler) ListMeetings(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("Panel ListMeetings: Query parse error", zap.Error(err))
	}
	params.Validate()

	result, err := h.service.ListMeetings(c.UserContext(), params)
	if err != nil {
		configslog.Log.Error("Panel - ListMeetings Error", zap.Error(err))
		return jsonError(c, err)
	}
	return c.JSON(result)
}

// GetMeeting tek bir toplantıyı getirir.
func (h *PanelMeetingHandler) GetMeeting(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, err)
	}
	meeting, err := h.service.GetMeetingByID(c.UserContext(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(meeting)
}

// CreateMeeting yeni toplantı oluşturur.
func (h *PanelMeetingHandler) CreateMeeting(c *fiber.Ctx) error {
	var req meetingRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, services.ErrInvalidInput)
	}

	meeting, err := h.service.CreateMeeting(c.UserContext(), req.Date, req.Type, req.Location, req.Notes)
	if err != nil {
		configslog.Log.Error("Panel - CreateMeeting Error", zap.Error(err))
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(meeting)
}

// UpdateMeeting toplantı bilgilerini günceller.
func (h *PanelMeetingHandler) UpdateMeeting(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, err)
	}
	var req meetingRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, services.ErrInvalidInput)
	}

	if err := h.service.UpdateMeeting(c.UserContext(), id, req.Date, req.Type, req.Location, req.Notes); err != nil {
		configslog.Log.Error("Panel - UpdateMeeting Error", zap.Uint("id", id), zap.Error(err))
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteMeeting toplantıyı ve yoklama kayıtlarını siler.
func (h *PanelMeetingHandler) DeleteMeeting(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, err)
	}
	if err := h.service.DeleteMeeting(c.UserContext(), id); err != nil {
		configslog.Log.Error("Panel - DeleteMeeting Error", zap.Uint("id", id), zap.Error(err))
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
