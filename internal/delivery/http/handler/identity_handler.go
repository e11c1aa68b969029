package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/safety-microservice/internal/delivery/http/middleware"
	"github.com/safety-microservice/internal/pkg/utils"
	"github.com/safety-microservice/internal/pkg/validator"
	"github.com/safety-microservice/internal/usecase"
	"github.com/safety-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// IdentityHandler - обработчик цифровых личностей
type IdentityHandler struct {
	identityUC *usecase.IdentityUseCase
	logger     *zap.Logger
}

// NewIdentityHandler - создание нового IdentityHandler
func NewIdentityHandler(identityUC *usecase.IdentityUseCase, logger *zap.Logger) *IdentityHandler {
	return &IdentityHandler{
		identityUC: identityUC,
		logger:     logger,
	}
}

// RegisterIdentity регистрирует личность актора запроса
func (h *IdentityHandler) RegisterIdentity(c *fiber.Ctx) error {
	var req dto.RegisterIdentityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	identity, err := h.identityUC.Register(c.Context(), middleware.ActorFromCtx(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, identity, nil)
}

// UpdateIdentity обновляет активную личность актора запроса
func (h *IdentityHandler) UpdateIdentity(c *fiber.Ctx) error {
	var req dto.UpdateIdentityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	identity, err := h.identityUC.Update(c.Context(), middleware.ActorFromCtx(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, identity, nil)
}

// DeactivateIdentity деактивирует личность актора запроса
func (h *IdentityHandler) DeactivateIdentity(c *fiber.Ctx) error {
	if err := h.identityUC.Deactivate(c.Context(), middleware.ActorFromCtx(c)); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"active": false}, nil)
}

// GetIdentity возвращает личность по actor UUID
func (h *IdentityHandler) GetIdentity(c *fiber.Ctx) error {
	actor, err := parseUUIDParam(c, "actor")
	if err != nil {
		return utils.SendError(c, err)
	}

	identity, err := h.identityUC.Get(c.Context(), actor)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, identity, nil)
}
