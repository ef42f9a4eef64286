package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/borehole-microservice/internal/pkg/errors"
	"github.com/borehole-microservice/internal/pkg/utils"
	"github.com/borehole-microservice/internal/pkg/validator"
	"github.com/borehole-microservice/internal/usecase"
	"github.com/borehole-microservice/internal/usecase/dto"
)

// SectionHandler - обработчик построения разрезов
type SectionHandler struct {
	sectionUC *usecase.SectionUseCase
	logger    *zap.Logger
}

// NewSectionHandler - создание нового SectionHandler
func NewSectionHandler(sectionUC *usecase.SectionUseCase, logger *zap.Logger) *SectionHandler {
	return &SectionHandler{
		sectionUC: sectionUC,
		logger:    logger,
	}
}

// BuildSection godoc
// @Summary Построение разреза по скважинам
// @Description Подбирает прямую наилучшего приближения по выбранным скважинам и возвращает их проекции, упорядоченные вдоль прямой. Порядок point_ids задаёт ориентацию: положительное направление от первой скважины к последней.
// @Tags Section
// @Accept json
// @Produce json
// @Param request body dto.SectionRequest true "Список ID скважин (минимум 2)"
// @Success 200 {object} utils.SuccessResponse{data=dto.SectionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/section [post]
func (h *SectionHandler) BuildSection(c *fiber.Ctx) error {
	var req dto.SectionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.sectionUC.BuildSection(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Projections),
	})
}
