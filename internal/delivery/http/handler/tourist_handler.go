package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/safety-microservice/internal/delivery/http/middleware"
	"github.com/safety-microservice/internal/pkg/errors"
	"github.com/safety-microservice/internal/pkg/utils"
	"github.com/safety-microservice/internal/pkg/validator"
	"github.com/safety-microservice/internal/usecase"
	"github.com/safety-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// TouristHandler - обработчик для туристов и их позиций
type TouristHandler struct {
	locationUC *usecase.LocationUseCase
	logger     *zap.Logger
}

// NewTouristHandler - создание нового TouristHandler
func NewTouristHandler(locationUC *usecase.LocationUseCase, logger *zap.Logger) *TouristHandler {
	return &TouristHandler{
		locationUC: locationUC,
		logger:     logger,
	}
}

// RegisterTourist регистрирует туриста (только ADMIN)
func (h *TouristHandler) RegisterTourist(c *fiber.Ctx) error {
	var req dto.RegisterTouristRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	tourist, err := h.locationUC.RegisterTourist(c.Context(), middleware.ActorFromCtx(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, tourist, nil)
}

// SetTouristActive включает или выключает туриста (только ADMIN)
func (h *TouristHandler) SetTouristActive(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req struct {
		Active *bool `json:"active" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.locationUC.SetTouristActive(c.Context(), middleware.ActorFromCtx(c), id, *req.Active); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"id": id, "active": *req.Active}, nil)
}

// GetTourist возвращает туриста по ID
func (h *TouristHandler) GetTourist(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	tourist, err := h.locationUC.GetTourist(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, tourist, nil)
}

// RecordLocation godoc
// @Summary Record tourist location
// @Description Принимает позицию туриста и прогоняет её через safety-конвейер
// @Tags Locations
// @Accept json
// @Produce json
// @Param request body dto.RecordLocationRequest true "Location sample"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/locations [post]
func (h *TouristHandler) RecordLocation(c *fiber.Ctx) error {
	var req dto.RecordLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	sample, err := h.locationUC.RecordLocation(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, sample, nil)
}

// ListHistory возвращает историю перемещений, новые записи первыми
func (h *TouristHandler) ListHistory(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	limit := c.QueryInt("limit", 100)

	samples, err := h.locationUC.ListHistory(c.Context(), id, limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, samples, &utils.Meta{
		Total: len(samples),
		Limit: limit,
	})
}

// parseUUIDParam парсит UUID path-параметр
func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidRequest
	}
	return id, nil
}
