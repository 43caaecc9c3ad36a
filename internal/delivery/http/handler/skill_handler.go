package handler

import (
	"errors"

	"skill-passport/internal/delivery/http/dto"
	"skill-passport/internal/delivery/http/middleware"
	"skill-passport/internal/domain/user"
	"skill-passport/internal/pkg/response"
	"skill-passport/internal/usecase/access"
	ucskill "skill-passport/internal/usecase/skill"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc ucskill.SkillUsecase
}

type createSkillRequest struct {
	SkillName     string `json:"skillName"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	Evidence      string `json:"evidence"`
	Issuer        string `json:"issuer"`
	IssuedBy      string `json:"issuedBy"`
	IssuedByEmail string `json:"issuedByEmail"`
}

type verifySkillRequest struct {
	SkillID string `json:"skillId"`
	Reason  string `json:"reason"`
}

func NewSkillHandler(uc ucskill.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router, session *middleware.SessionMiddleware) {
	if r == nil || session == nil {
		return
	}

	student := session.Middleware(user.RoleStudent)
	lecturer := session.Middleware(user.RoleLecturer)
	employer := session.Middleware(user.RoleEmployer)

	grp := r.Group("/skills")
	grp.Post("/create", student, h.Create)
	grp.Get("/my-skills", student, h.MySkills)
	grp.Get("/pending", lecturer, h.Pending)
	grp.Post("/approve", lecturer, h.Approve)
	grp.Post("/reject", lecturer, h.Reject)
	grp.Get("/search", employer, h.Search)
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Not authenticated", nil, nil)
	}

	var req createSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.RequestSkill(c.Context(), actor, ucskill.RequestInput{
		SkillName:     req.SkillName,
		Category:      req.Category,
		Description:   req.Description,
		Evidence:      req.Evidence,
		Issuer:        req.Issuer,
		IssuedBy:      req.IssuedBy,
		IssuedByEmail: req.IssuedByEmail,
	})
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.OK(c, fiber.Map{"skill": dto.NewSkillResponse(created)})
}

func (h *SkillHandler) MySkills(c fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Not authenticated", nil, nil)
	}

	items, err := h.uc.ListOwnSkills(c.Context(), actor)
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.OK(c, fiber.Map{"skills": dto.NewSkillResponses(items)})
}

func (h *SkillHandler) Pending(c fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Not authenticated", nil, nil)
	}

	items, err := h.uc.ListPending(c.Context(), actor)
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.OK(c, fiber.Map{"skills": dto.NewSkillResponses(items)})
}

func (h *SkillHandler) Approve(c fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Not authenticated", nil, nil)
	}

	var req verifySkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.ApproveSkill(c.Context(), actor, req.SkillID)
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.OK(c, fiber.Map{"skill": dto.NewSkillResponse(updated)})
}

func (h *SkillHandler) Reject(c fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Not authenticated", nil, nil)
	}

	var req verifySkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.RejectSkill(c.Context(), actor, req.SkillID, req.Reason)
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.OK(c, fiber.Map{"skill": dto.NewSkillResponse(updated)})
}

func (h *SkillHandler) Search(c fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Not authenticated", nil, nil)
	}

	students, err := h.uc.SearchSkills(c.Context(), actor, c.Query("q"))
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.OK(c, fiber.Map{"students": dto.NewStudentResponses(students)})
}

func mapSkillUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, access.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, access.ErrUnauthenticated):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Not authenticated", nil, err)
	case errors.Is(err, ucskill.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing required fields", nil, err)
	case errors.Is(err, ucskill.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, ucskill.ErrAlreadyVerified):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already verified", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
