package handler

import (
	"time"

	"github.com/coverage-microservice/internal/pkg/utils"
	"github.com/coverage-microservice/internal/pkg/validator"
	"github.com/coverage-microservice/internal/usecase"
	"github.com/coverage-microservice/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CoverageHandler - handler for coverage computation requests
type CoverageHandler struct {
	coverageUC *usecase.CoverageUseCase
	logger     *zap.Logger
}

// NewCoverageHandler creates a new CoverageHandler
func NewCoverageHandler(coverageUC *usecase.CoverageUseCase, logger *zap.Logger) *CoverageHandler {
	return &CoverageHandler{
		coverageUC: coverageUC,
		logger:     logger,
	}
}

// Compute godoc
// @Summary Compute a coverage heatmap
// @Description Estimates RSRP across a directional grid around the transmitter
// @Tags coverage
// @Accept json
// @Produce json
// @Param request body dto.CoverageRequest true "Site, model and grid parameters"
// @Success 200 {object} utils.SuccessResponse{data=dto.CoverageResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/coverage [post]
func (h *CoverageHandler) Compute(c *fiber.Ctx) error {
	var req dto.CoverageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	started := time.Now()
	result, err := h.coverageUC.Compute(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:    result.Total,
		TimeMSec: float64(time.Since(started).Microseconds()) / 1000,
	})
}
