package handlers // handlers/panel paketi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"uyetakip.app/configs/configslog"
	"uyetakip.app/pkg/queryparams"
	"uyetakip.app/services"
)

// PanelMembershipHandler misafir/pipeliner/üye kayıtları ve terfi uçları.
type PanelMembershipHandler struct {
	membership services.IMembershipService
	promotions services.IPromotionService
}

// NewPanelMembershipHandler yeni bir PanelMembershipHandler örneği oluşturur.
func NewPanelMembershipHandler() *PanelMembershipHandler {
	return &PanelMembershipHandler{
		membership: services.NewMembershipService(),
		promotions: services.NewPromotionService(),
	}
}

type promoteGuestRequest struct {
	SponsorMemberID uint   `json:"sponsor_member_id"`
	Notes           string `json:"notes"`
	Override        bool   `json:"override"`
}

type promoteToMemberRequest struct {
	MemberNumber string    `json:"member_number"`
	JoinDate     time.Time `json:"join_date"`
}

func (h *PanelMembershipHandler) listParams(c *fiber.Ctx) queryparams.ListParams {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("Panel membership: Query parse error", zap.Error(err))
	}
	params.Validate()
	return params
}

// --- Misafirler ---

// ListGuests misafirleri listeler.
func (h *PanelMembershipHandler) ListGuests(c *fiber.Ctx) error {
	result, err := h.membership.ListGuests(c.UserContext(), h.listParams(c))
	if err != nil {
		configslog.Log.Error("Panel - ListGuests Error", zap.Error(err))
		return jsonError(c, err)
	}
	return c.JSON(result)
}

// GetGuest misafiri getirir.
func (h *PanelMembershipHandler) GetGuest(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, err)
	}
	guest, err := h.membership.GetGuestByID(c.UserContext(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(guest)
}

// CreateGuest yeni misafir kaydı açar.
func (h *PanelMembershipHandler) CreateGuest(c *fiber.Ctx) error {
	var input services.GuestInput
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, services.ErrInvalidInput)
	}
	guest, err := h.membership.CreateGuest(c.UserContext(), input)
	if err != nil {
		configslog.Log.Error("Panel - CreateGuest Error", zap.Error(err))
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(guest)
}

// UpdateGuest misafir bilgilerini günceller.
func (h *PanelMembershipHandler) UpdateGuest(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, err)
	}
	var input services.GuestInput
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, services.ErrInvalidInput)
	}
	guest, err := h.membership.UpdateGuest(c.UserContext(), id, input)
	if err != nil {
		configslog.Log.Error("Panel - UpdateGuest Error", zap.Uint("id", id), zap.Error(err))
		return jsonError(c, err)
	}
	return c.JSON(guest)
}

// DeactivateGuest misafiri pasife alır.
func (h *PanelMembershipHandler) DeactivateGuest(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, err)
	}
	if err := h.membership.DeactivateGuest(c.UserContext(), id); err != nil {
		configslog.Log.Error("Panel - DeactivateGuest Error", zap.Uint("id", id), zap.Error(err))
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetGuestEligibility misafirin terfi uygunluğunu döndürür.
func (h *PanelMembershipHandler) GetGuestEligibility(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, err)
	}
	progress, err := h.promotions.GetGuestEligibility(c.UserContext(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(progress)
}

// PromoteGuest misafiri pipeline'a alır.
func (h *PanelMembershipHandler) PromoteGuest(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, err)
	}
	var req promoteGuestRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, services.ErrInvalidInput)
	}
	pipeliner, err := h.promotions.PromoteGuestToPipeliner(c.UserContext(), id, req.SponsorMemberID, req.Notes, req.Override)
	if err != nil {
		configslog.Log.Error("Panel - PromoteGuest Error", zap.Uint("guestID", id), zap.Error(err))
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pipeliner)
}

// --- Pipeliner'lar ---

// ListPipeliners pipeliner'ları listeler.
func (h *PanelMembershipHandler) ListPipeliners(c *fiber.Ctx) error {
	result, err := h.membership.ListPipeliners(c.UserContext(), h.listParams(c))
	if err != nil {
		configslog.Log.Error("Panel - ListPipeliners Error", zap.Error(err))
		return jsonError(c, err)
	}
	return c.JSON(result)
}

// GetPipeliner pipeliner'ı getirir.
func (h *PanelMembershipHandler) GetPipeliner(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, err)
	}
	pipeliner, err := h.membership.GetPipelinerByID(c.UserContext(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(pipeliner)
}

// CreatePipeliner idari pipeliner kaydı açar.
func (h *PanelMembershipHandler) CreatePipeliner(c *fiber.Ctx) error {
	var input services.PipelinerInput
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, services.ErrInvalidInput)
	}
	pipeliner, err := h.membership.CreatePipeliner(c.UserContext(), input)
	if err != nil {
		configslog.Log.Error("Panel - CreatePipeliner Error", zap.Error(err))
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pipeliner)
}

// GetPipelinerEligibility pipeliner'ın üyelik uygunluğunu döndürür.
func (h *PanelMembershipHandler) GetPipelinerEligibility(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, err)
	}
	progress, err := h.promotions.GetPipelinerEligibility(c.UserContext(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(progress)
}

// PromotePipeliner pipeliner'ı tam üyeliğe geçirir.
func (h *PanelMembershipHandler) PromotePipeliner(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, err)
	}
	var req promoteToMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, services.ErrInvalidInput)
	}
	member, err := h.promotions.PromoteToMember(c.UserContext(), id, req.MemberNumber, req.JoinDate)
	if err != nil {
		configslog.Log.Error("Panel - PromotePipeliner Error", zap.Uint("pipelinerID", id), zap.Error(err))
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

// --- Üyeler ---

// ListMembers üyeleri listeler.
func (h *PanelMembershipHandler) ListMembers(c *fiber.Ctx) error {
	result, err := h.membership.ListMembers(c.UserContext(), h.listParams(c))
	if err != nil {
		configslog.Log.Error("Panel - ListMembers Error", zap.Error(err))
		return jsonError(c, err)
	}
	return c.JSON(result)
}

// GetMember üyeyi getirir.
func (h *PanelMembershipHandler) GetMember(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return jsonError(c, err)
	}
	member, err := h.membership.GetMemberByID(c.UserContext(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(member)
}

// CreateMember doğrudan üye kaydı açar (kurucu üyeler, transferler).
func (h *PanelMembershipHandler) CreateMember(c *fiber.Ctx) error {
	var input services.MemberInput
	if err := c.BodyParser(&input); err != nil {
		return jsonError(c, services.ErrInvalidInput)
	}
	member, err := h.membership.CreateMember(c.UserContext(), input)
	if err != nil {
		configslog.Log.Error("Panel - CreateMember Error", zap.Error(err))
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}
