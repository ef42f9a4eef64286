package repository

import (
	"context"

	"github.com/borehole-microservice/internal/domain"
)

// BoreholeRepository определяет методы для работы со скважинами
type BoreholeRepository interface {
	// GetByID возвращает скважину по ID
	GetByID(ctx context.Context, id string) (*domain.SurveyPoint, error)

	// GetByIDs возвращает скважины по списку ID, порядок входа сохраняется
	GetByIDs(ctx context.Context, ids []string) ([]*domain.SurveyPoint, error)

	// List возвращает скважины, опционально внутри bbox географических
	// координат
	List(ctx context.Context, bounds *domain.BoundingBox, limit, offset int) ([]*domain.SurveyPoint, error)

	// CreateBatch вставляет пакет скважин
	CreateBatch(ctx context.Context, points []*domain.SurveyPoint) error

	// UpdateDerived сохраняет производные координаты после обогащения
	UpdateDerived(ctx context.Context, points []*domain.SurveyPoint) error

	// GetUnenriched возвращает скважины без производных координат
	GetUnenriched(ctx context.Context, limit int) ([]*domain.SurveyPoint, error)
}
