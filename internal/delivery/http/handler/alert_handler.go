package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/safety-microservice/internal/delivery/http/middleware"
	"github.com/safety-microservice/internal/pkg/errors"
	"github.com/safety-microservice/internal/pkg/utils"
	"github.com/safety-microservice/internal/pkg/validator"
	"github.com/safety-microservice/internal/usecase"
	"github.com/safety-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// AlertHandler - обработчик жизненного цикла алертов и реагирования
type AlertHandler struct {
	alertUC *usecase.AlertUseCase
	logger  *zap.Logger
}

// NewAlertHandler - создание нового AlertHandler
func NewAlertHandler(alertUC *usecase.AlertUseCase, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{
		alertUC: alertUC,
		logger:  logger,
	}
}

// TriggerAlert создаёт новый алерт от имени актора запроса
func (h *AlertHandler) TriggerAlert(c *fiber.Ctx) error {
	var req dto.TriggerAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	alert, err := h.alertUC.TriggerAlert(c.Context(), middleware.ActorFromCtx(c).String(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, alert, nil)
}

// AcknowledgeAlert переводит алерт в acknowledged (только RESPONDER)
func (h *AlertHandler) AcknowledgeAlert(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	alert, err := h.alertUC.AcknowledgeAlert(c.Context(), middleware.ActorFromCtx(c), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, alert, nil)
}

// ResolveAlert переводит алерт в resolved (только RESPONDER)
func (h *AlertHandler) ResolveAlert(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	alert, err := h.alertUC.ResolveAlert(c.Context(), middleware.ActorFromCtx(c), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, alert, nil)
}

// GetAlert возвращает алерт вместе с записями реагирования
func (h *AlertHandler) GetAlert(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	alert, err := h.alertUC.GetAlert(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, alert, nil)
}

// ListAlertsBySubject возвращает алерты субъекта, новые первыми
func (h *AlertHandler) ListAlertsBySubject(c *fiber.Ctx) error {
	subjectID, err := parseUUIDParam(c, "subject_id")
	if err != nil {
		return utils.SendError(c, err)
	}

	limit := c.QueryInt("limit", 100)

	alerts, err := h.alertUC.ListAlertsBySubject(c.Context(), subjectID, limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, alerts, &utils.Meta{
		Total: len(alerts),
		Limit: limit,
	})
}

// DispatchResponse направляет реагирование по алерту (только RESPONDER)
func (h *AlertHandler) DispatchResponse(c *fiber.Ctx) error {
	alertID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.DispatchResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	response, err := h.alertUC.DispatchResponse(c.Context(), middleware.ActorFromCtx(c), alertID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, response, nil)
}

// UpdateResponseStatus обновляет стадию реагирования (только владелец)
func (h *AlertHandler) UpdateResponseStatus(c *fiber.Ctx) error {
	alertID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil || index < 0 {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.UpdateResponseStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	response, err := h.alertUC.UpdateResponseStatus(c.Context(), middleware.ActorFromCtx(c), alertID, index, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, response, nil)
}
