package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/safety-microservice/internal/pkg/errors"
	"github.com/safety-microservice/internal/pkg/utils"
	"github.com/safety-microservice/internal/pkg/validator"
	"github.com/safety-microservice/internal/usecase"
	"github.com/safety-microservice/internal/usecase/dto"
	"go.uber.org/zap"

	"github.com/safety-microservice/internal/delivery/http/middleware"
)

// ZoneHandler - обработчик для управления геозонами
type ZoneHandler struct {
	geofenceUC *usecase.GeofenceUseCase
	logger     *zap.Logger
}

// NewZoneHandler - создание нового ZoneHandler
func NewZoneHandler(geofenceUC *usecase.GeofenceUseCase, logger *zap.Logger) *ZoneHandler {
	return &ZoneHandler{
		geofenceUC: geofenceUC,
		logger:     logger,
	}
}

// CreateZone godoc
// @Summary Create geofence zone
// @Description Создаёт круговую геозону (только ADMIN)
// @Tags Zones
// @Accept json
// @Produce json
// @Param X-Actor-ID header string true "Actor UUID"
// @Param request body dto.CreateZoneRequest true "Zone definition"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /api/v1/zones [post]
func (h *ZoneHandler) CreateZone(c *fiber.Ctx) error {
	var req dto.CreateZoneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	zone, err := h.geofenceUC.AddZone(c.Context(), middleware.ActorFromCtx(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, zone, nil)
}

// UpdateZone обновляет изменяемые поля зоны (только ADMIN)
func (h *ZoneHandler) UpdateZone(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateZoneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	zone, err := h.geofenceUC.UpdateZone(c.Context(), middleware.ActorFromCtx(c), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, zone, nil)
}

// SetZoneActive включает или выключает зону (только ADMIN)
func (h *ZoneHandler) SetZoneActive(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.SetZoneActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.geofenceUC.SetZoneActive(c.Context(), middleware.ActorFromCtx(c), id, *req.Active); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"id": id, "active": *req.Active}, nil)
}

// GetZone возвращает зону по ID
func (h *ZoneHandler) GetZone(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	zone, err := h.geofenceUC.GetZone(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, zone, nil)
}

// ListZones возвращает зоны; ?active=true отдаёт только активные
func (h *ZoneHandler) ListZones(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active", false)

	zones, err := h.geofenceUC.ListZones(c.Context(), activeOnly)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, zones, &utils.Meta{
		Total: len(zones),
	})
}

// parseIDParam парсит числовой path-параметр
func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidRequest
	}
	return id, nil
}
