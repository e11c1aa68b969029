package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/safety-microservice/internal/delivery/http/middleware"
	"github.com/safety-microservice/internal/domain"
	"github.com/safety-microservice/internal/pkg/errors"
	"github.com/safety-microservice/internal/pkg/utils"
	"github.com/safety-microservice/internal/pkg/validator"
	"github.com/safety-microservice/internal/usecase"
	"github.com/safety-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// RoleHandler - обработчик управления ролями
type RoleHandler struct {
	accessUC *usecase.AccessUseCase
	logger   *zap.Logger
}

// NewRoleHandler - создание нового RoleHandler
func NewRoleHandler(accessUC *usecase.AccessUseCase, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{
		accessUC: accessUC,
		logger:   logger,
	}
}

// GrantRole выдаёт роль актору (только ADMIN)
func (h *RoleHandler) GrantRole(c *fiber.Ctx) error {
	var req dto.GrantRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	target, err := uuid.Parse(req.Actor)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.accessUC.GrantRole(c.Context(), middleware.ActorFromCtx(c), domain.Role(req.Role), target); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"role": req.Role, "actor": req.Actor, "granted": true}, nil)
}

// RevokeRole отзывает роль у актора (только ADMIN)
func (h *RoleHandler) RevokeRole(c *fiber.Ctx) error {
	var req dto.GrantRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	target, err := uuid.Parse(req.Actor)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.accessUC.RevokeRole(c.Context(), middleware.ActorFromCtx(c), domain.Role(req.Role), target); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"role": req.Role, "actor": req.Actor, "granted": false}, nil)
}

// HasRole проверяет членство актора в роли
func (h *RoleHandler) HasRole(c *fiber.Ctx) error {
	role := domain.Role(c.Params("role"))
	if !role.IsValid() {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	actor, err := parseUUIDParam(c, "actor")
	if err != nil {
		return utils.SendError(c, err)
	}

	has, err := h.accessUC.HasRole(c.Context(), role, actor)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"role": role, "actor": actor, "member": has}, nil)
}
