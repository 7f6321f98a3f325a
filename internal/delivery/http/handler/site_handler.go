package handler

import (
	"github.com/coverage-microservice/internal/pkg/errors"
	"github.com/coverage-microservice/internal/pkg/utils"
	"github.com/coverage-microservice/internal/pkg/validator"
	"github.com/coverage-microservice/internal/usecase"
	"github.com/coverage-microservice/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SiteHandler - handler for the transmitter site registry
type SiteHandler struct {
	siteUC *usecase.SiteUseCase
	logger *zap.Logger
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(siteUC *usecase.SiteUseCase, logger *zap.Logger) *SiteHandler {
	return &SiteHandler{
		siteUC: siteUC,
		logger: logger,
	}
}

// Create godoc
// @Summary Register a transmitter site
// @Tags sites
// @Accept json
// @Produce json
// @Param request body dto.CreateSiteRequest true "Site parameters"
// @Success 200 {object} utils.SuccessResponse{data=dto.SiteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/sites [post]
func (h *SiteHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSiteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.siteUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// List godoc
// @Summary List registered sites
// @Tags sites
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.SiteListResponse}
// @Router /api/v1/sites [get]
func (h *SiteHandler) List(c *fiber.Ctx) error {
	result, err := h.siteUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// GetByID godoc
// @Summary Get a site by ID
// @Tags sites
// @Produce json
// @Param id path string true "Site ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.SiteResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sites/{id} [get]
func (h *SiteHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidSiteID)
	}

	result, err := h.siteUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Delete godoc
// @Summary Delete a site
// @Tags sites
// @Param id path string true "Site ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sites/{id} [delete]
func (h *SiteHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidSiteID)
	}

	if err := h.siteUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": id.String()}, nil)
}

// ComputeCoverage godoc
// @Summary Compute coverage for a stored site
// @Tags sites
// @Accept json
// @Produce json
// @Param id path string true "Site ID"
// @Param request body dto.SiteCoverageRequest true "Grid parameters"
// @Success 200 {object} utils.SuccessResponse{data=dto.CoverageResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sites/{id}/coverage [post]
func (h *SiteHandler) ComputeCoverage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidSiteID)
	}

	var req dto.SiteCoverageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.siteUC.ComputeCoverage(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}
