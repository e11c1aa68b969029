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

// IncidentHandler - обработчик жизненного цикла инцидентов
type IncidentHandler struct {
	incidentUC *usecase.IncidentUseCase
	logger     *zap.Logger
}

// NewIncidentHandler - создание нового IncidentHandler
func NewIncidentHandler(incidentUC *usecase.IncidentUseCase, logger *zap.Logger) *IncidentHandler {
	return &IncidentHandler{
		incidentUC: incidentUC,
		logger:     logger,
	}
}

// ReportIncident заявляет инцидент от имени актора с активной личностью
func (h *IncidentHandler) ReportIncident(c *fiber.Ctx) error {
	var req dto.ReportIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	incident, err := h.incidentUC.Report(c.Context(), middleware.ActorFromCtx(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, incident, nil)
}

// AcknowledgeIncident берёт инцидент в работу (только RESPONDER)
func (h *IncidentHandler) AcknowledgeIncident(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	incident, err := h.incidentUC.Acknowledge(c.Context(), middleware.ActorFromCtx(c), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, incident, nil)
}

// ResolveIncident закрывает инцидент: resolved или dismissed
func (h *IncidentHandler) ResolveIncident(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.ResolveIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	incident, err := h.incidentUC.Resolve(c.Context(), middleware.ActorFromCtx(c), id, req.Dismiss)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, incident, nil)
}

// LinkCredential привязывает credential к инциденту (только RESPONDER)
func (h *IncidentHandler) LinkCredential(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.LinkCredentialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	incident, err := h.incidentUC.LinkCredential(c.Context(), middleware.ActorFromCtx(c), id, req.CredentialID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, incident, nil)
}

// GetIncident возвращает инцидент по ID
func (h *IncidentHandler) GetIncident(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	incident, err := h.incidentUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, incident, nil)
}

// ListIncidents возвращает инциденты по reporter или по статусу
func (h *IncidentHandler) ListIncidents(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)

	if raw := c.Query("reporter"); raw != "" {
		reporter, err := parseUUIDQuery(raw)
		if err != nil {
			return utils.SendError(c, err)
		}

		incidents, err := h.incidentUC.ListByReporter(c.Context(), reporter, limit)
		if err != nil {
			return utils.SendError(c, err)
		}

		return utils.SendSuccess(c, incidents, &utils.Meta{Total: len(incidents), Limit: limit})
	}

	status := domain.IncidentStatus(c.Query("status", string(domain.IncidentReported)))
	incidents, err := h.incidentUC.ListByStatus(c.Context(), status, limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, incidents, &utils.Meta{Total: len(incidents), Limit: limit})
}

// parseUUIDQuery парсит UUID query-параметр
func parseUUIDQuery(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.ErrInvalidRequest
	}
	return id, nil
}
