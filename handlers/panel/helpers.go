package handlers // handlers/panel paketi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"uyetakip.app/services"
)

// statusForError servis hatasını HTTP durum koduna çevirir.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrMeetingNotFound),
		errors.Is(err, services.ErrGuestNotFound),
		errors.Is(err, services.ErrPipelinerNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrCharityEventNotFound),
		errors.Is(err, services.ErrAttendanceNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrDuplicateAttendance),
		errors.Is(err, services.ErrDuplicateIdentifier),
		errors.Is(err, services.ErrSubjectAlreadyPromoted),
		errors.Is(err, services.ErrGuestNotActive):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrNotEligible):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidSubject),
		errors.Is(err, services.ErrInvalidParticipant),
		errors.Is(err, services.ErrMissingRequiredField):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrTransientStore):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, services.ErrConsistencyViolation):
		return fiber.StatusInternalServerError
	}
	return fiber.StatusInternalServerError
}

// jsonError hatayı tek biçimli JSON gövdesiyle döndürür.
func jsonError(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
}

// paramID yol parametresinden pozitif ID okur.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, services.ErrInvalidInput
	}
	return uint(id), nil
}
