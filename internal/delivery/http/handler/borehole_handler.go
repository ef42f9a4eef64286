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

// BoreholeHandler - обработчик CRUD-запросов по скважинам
type BoreholeHandler struct {
	boreholeUC *usecase.BoreholeUseCase
	logger     *zap.Logger
}

// NewBoreholeHandler - создание нового BoreholeHandler
func NewBoreholeHandler(boreholeUC *usecase.BoreholeUseCase, logger *zap.Logger) *BoreholeHandler {
	return &BoreholeHandler{
		boreholeUC: boreholeUC,
		logger:     logger,
	}
}

// GetByID godoc
// @Summary Скважина по ID
// @Tags Boreholes
// @Produce json
// @Param id path string true "ID скважины"
// @Success 200 {object} utils.SuccessResponse{data=dto.BoreholeResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/boreholes/{id} [get]
func (h *BoreholeHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	result, err := h.boreholeUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// List godoc
// @Summary Листинг скважин
// @Description Возвращает скважины, опционально ограниченные bbox географических координат (все четыре угла обязательны вместе)
// @Tags Boreholes
// @Produce json
// @Param min_lat query number false "Южная граница"
// @Param min_lon query number false "Западная граница"
// @Param max_lat query number false "Северная граница"
// @Param max_lon query number false "Восточная граница"
// @Param limit query int false "Максимум записей" default(100)
// @Param offset query int false "Смещение"
// @Success 200 {object} utils.SuccessResponse{data=dto.BoreholesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/boreholes [get]
func (h *BoreholeHandler) List(c *fiber.Ctx) error {
	var req dto.ListBoreholesRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.boreholeUC.List(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
		Limit: req.Limit,
	})
}

// CreateBatch godoc
// @Summary Пакетная загрузка скважин
// @Description Сохраняет партию скважин с координатами национальной сетки и публикует событие на асинхронное обогащение производных координат
// @Tags Boreholes
// @Accept json
// @Produce json
// @Param request body dto.CreateBoreholesRequest true "Партия скважин"
// @Success 200 {object} utils.SuccessResponse{data=dto.CreateBoreholesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/boreholes [post]
func (h *BoreholeHandler) CreateBatch(c *fiber.Ctx) error {
	var req dto.CreateBoreholesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.boreholeUC.CreateBatch(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
