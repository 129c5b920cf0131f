package handlers // handlers/panel paketi

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"uyetakip.app/configs/configslog"
	"uyetakip.app/models"
	"uyetakip.app/services"
)

// PanelAttendanceHandler yoklama defteri uçları.
type PanelAttendanceHandler struct {
	service services.IAttendanceService
}

// NewPanelAttendanceHandler yeni bir PanelAttendanceHandler örneği oluşturur.
func NewPanelAttendanceHandler() *PanelAttendanceHandler {
	return &PanelAttendanceHandler{
		service: services.NewAttendanceService(),
	}
}

type attendanceRequest struct {
	Subject models.Subject          `json:"subject"`
	Status  models.AttendanceStatus `json:"status"`
	Notes   string                  `json:"notes"`
}

// ListAttendance toplantının yoklama kayıtlarını listeler.
func (h *PanelAttendanceHandler) ListAttendance(c *fiber.Ctx) error {
	meetingID, err := paramID(c, "meetingID")
	if err != nil {
		return jsonError(c, err)
	}
	records, err := h.service.ListByMeeting(c.UserContext(), meetingID)
	if err != nil {
		configslog.Log.Error("Panel - ListAttendance Error", zap.Uint("meetingID", meetingID), zap.Error(err))
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"data": records})
}

// RecordAttendance toplantıya yoklama kaydı ekler.
func (h *PanelAttendanceHandler) RecordAttendance(c *fiber.Ctx) error {
	meetingID, err := paramID(c, "meetingID")
	if err != nil {
		return jsonError(c, err)
	}
	var req attendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, services.ErrInvalidInput)
	}

	record, err := h.service.RecordAttendance(c.UserContext(), meetingID, req.Subject, req.Status, req.Notes)
	if err != nil {
		configslog.Log.Error("Panel - RecordAttendance Error",
			zap.Uint("meetingID", meetingID), zap.Error(err))
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// UpdateAttendance mevcut yoklama kaydını günceller.
func (h *PanelAttendanceHandler) UpdateAttendance(c *fiber.Ctx) error {
	recordID, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, err)
	}
	var req attendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, services.ErrInvalidInput)
	}

	record, err := h.service.UpdateAttendance(c.UserContext(), recordID, req.Subject, req.Status, req.Notes)
	if err != nil {
		configslog.Log.Error("Panel - UpdateAttendance Error", zap.Uint("id", recordID), zap.Error(err))
		return jsonError(c, err)
	}
	return c.JSON(record)
}

// DeleteAttendance yoklama kaydını siler.
func (h *PanelAttendanceHandler) DeleteAttendance(c *fiber.Ctx) error {
	recordID, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, err)
	}
	if err := h.service.DeleteAttendance(c.UserContext(), recordID); err != nil {
		configslog.Log.Error("Panel - DeleteAttendance Error", zap.Uint("id", recordID), zap.Error(err))
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
