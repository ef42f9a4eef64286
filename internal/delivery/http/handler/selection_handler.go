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

// SelectionHandler - обработчик пространственного отбора
type SelectionHandler struct {
	selectionUC *usecase.SelectionUseCase
	logger      *zap.Logger
}

// NewSelectionHandler - создание нового SelectionHandler
func NewSelectionHandler(selectionUC *usecase.SelectionUseCase, logger *zap.Logger) *SelectionHandler {
	return &SelectionHandler{
		selectionUC: selectionUC,
		logger:      logger,
	}
}

// SelectPoints godoc
// @Summary Пространственный отбор скважин
// @Description Возвращает ID скважин, попадающих в заданную фигуру: полигон, прямоугольник или полилинию с буферным коридором. Пустой candidate_ids означает отбор по всем скважинам.
// @Tags Selection
// @Accept json
// @Produce json
// @Param request body dto.SelectionRequest true "Фигура отбора и кандидаты"
// @Success 200 {object} utils.SuccessResponse{data=dto.SelectionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/selection [post]
func (h *SelectionHandler) SelectPoints(c *fiber.Ctx) error {
	var req dto.SelectionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.selectionUC.SelectPoints(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// BuildCorridor godoc
// @Summary Буферный коридор вокруг полилинии
// @Description Строит замкнутый полигон коридора постоянной реальной ширины (в метрах) вокруг полилинии. Полилиния задаётся списком вершин или encoded polyline. Результат - GeoJSON Feature.
// @Tags Selection
// @Accept json
// @Produce json
// @Param request body dto.CorridorRequest true "Полилиния и полуширина в метрах"
// @Success 200 {object} utils.SuccessResponse{data=dto.CorridorResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/corridor [post]
func (h *SelectionHandler) BuildCorridor(c *fiber.Ctx) error {
	var req dto.CorridorRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.selectionUC.BuildCorridor(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
