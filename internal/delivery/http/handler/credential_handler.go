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

// CredentialHandler - обработчик выдачи и проверки credentials
type CredentialHandler struct {
	credentialUC *usecase.CredentialUseCase
	logger       *zap.Logger
}

// NewCredentialHandler - создание нового CredentialHandler
func NewCredentialHandler(credentialUC *usecase.CredentialUseCase, logger *zap.Logger) *CredentialHandler {
	return &CredentialHandler{
		credentialUC: credentialUC,
		logger:       logger,
	}
}

// IssueCredential выдаёт credential (только ISSUER)
func (h *CredentialHandler) IssueCredential(c *fiber.Ctx) error {
	var req dto.IssueCredentialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	credential, err := h.credentialUC.Issue(c.Context(), middleware.ActorFromCtx(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, credential, nil)
}

// RevokeCredential отзывает credential (только ISSUER)
func (h *CredentialHandler) RevokeCredential(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.credentialUC.Revoke(c.Context(), middleware.ActorFromCtx(c), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"id": id, "revoked": true}, nil)
}

// GetCredential возвращает credential с вычисленной валидностью
func (h *CredentialHandler) GetCredential(c *fiber.Ctx) error {
	id := c.Params("id")

	status, err := h.credentialUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, status, nil)
}

// FindCredentialID воспроизводит производный идентификатор из входов
func (h *CredentialHandler) FindCredentialID(c *fiber.Ctx) error {
	var req dto.FindCredentialIDRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	id, err := h.credentialUC.FindCredentialID(req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"id": id}, nil)
}
