package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/borehole-microservice/internal/domain"
	"github.com/borehole-microservice/internal/domain/repository"
	"github.com/borehole-microservice/internal/pkg/errors"
)

const boreholeColumns = `
	id, name, grid_x, grid_y, geo_lat, geo_lon, proj_x, proj_y,
	depth, created_at, enriched_at
`

type boreholeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewBoreholeRepository(db *DB) repository.BoreholeRepository {
	return &boreholeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *boreholeRepository) GetByID(ctx context.Context, id string) (*domain.SurveyPoint, error) {
	query := `SELECT ` + boreholeColumns + ` FROM boreholes WHERE id = $1`

	var p domain.SurveyPoint
	err := r.scanRow(r.db.QueryRowContext(ctx, query, id), &p)
	if err == sql.ErrNoRows {
		return nil, errors.ErrBoreholeNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get borehole by ID", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &p, nil
}

func (r *boreholeRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.SurveyPoint, error) {
	if len(ids) == 0 {
		return []*domain.SurveyPoint{}, nil
	}

	query := `SELECT ` + boreholeColumns + ` FROM boreholes WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to get boreholes by IDs", zap.Int("count", len(ids)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	byID := make(map[string]*domain.SurveyPoint, len(ids))
	for rows.Next() {
		var p domain.SurveyPoint
		if err := r.scanRows(rows, &p); err != nil {
			r.logger.Error("Failed to scan borehole", zap.Error(err))
			continue
		}
		byID[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate boreholes", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	// Порядок входного списка сохраняется, отсутствующие ID опускаются
	points := make([]*domain.SurveyPoint, 0, len(byID))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			points = append(points, p)
		}
	}
	return points, nil
}

func (r *boreholeRepository) List(ctx context.Context, bounds *domain.BoundingBox, limit, offset int) ([]*domain.SurveyPoint, error) {
	query := `SELECT ` + boreholeColumns + ` FROM boreholes`
	args := []interface{}{}
	argIdx := 1

	if bounds != nil {
		query += fmt.Sprintf(
			" WHERE geo_lat BETWEEN $%d AND $%d AND geo_lon BETWEEN $%d AND $%d",
			argIdx, argIdx+1, argIdx+2, argIdx+3,
		)
		args = append(args, bounds.MinLat, bounds.MaxLat, bounds.MinLon, bounds.MaxLon)
		argIdx += 4
	}

	query += fmt.Sprintf(" ORDER BY created_at, id LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list boreholes", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var points []*domain.SurveyPoint
	for rows.Next() {
		var p domain.SurveyPoint
		if err := r.scanRows(rows, &p); err != nil {
			r.logger.Error("Failed to scan borehole", zap.Error(err))
			continue
		}
		points = append(points, &p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate boreholes", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return points, nil
}

func (r *boreholeRepository) CreateBatch(ctx context.Context, points []*domain.SurveyPoint) error {
	if len(points) == 0 {
		return nil
	}

	values := make([]string, 0, len(points))
	args := make([]interface{}, 0, len(points)*5)
	for i, p := range points {
		base := i * 5
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5))
		args = append(args, p.ID, p.Name, p.GridX, p.GridY, p.Depth)
	}

	query := `
		INSERT INTO boreholes (id, name, grid_x, grid_y, depth)
		VALUES ` + strings.Join(values, ", ") + `
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			grid_x = EXCLUDED.grid_x,
			grid_y = EXCLUDED.grid_y,
			depth = EXCLUDED.depth,
			geo_lat = NULL, geo_lon = NULL,
			proj_x = NULL, proj_y = NULL,
			enriched_at = NULL
	`

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to insert boreholes", zap.Int("count", len(points)), zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *boreholeRepository) UpdateDerived(ctx context.Context, points []*domain.SurveyPoint) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	query := `
		UPDATE boreholes SET
			geo_lat = $2, geo_lon = $3,
			proj_x = $4, proj_y = $5,
			enriched_at = NOW()
		WHERE id = $1
	`
	for _, p := range points {
		if _, err := tx.ExecContext(ctx, query, p.ID, p.GeoLat, p.GeoLon, p.ProjX, p.ProjY); err != nil {
			r.logger.Error("Failed to update derived coordinates", zap.String("id", p.ID), zap.Error(err))
			return errors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit derived coordinates", zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *boreholeRepository) GetUnenriched(ctx context.Context, limit int) ([]*domain.SurveyPoint, error) {
	query := `SELECT ` + boreholeColumns + `
		FROM boreholes
		WHERE enriched_at IS NULL
		ORDER BY created_at, id
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to get unenriched boreholes", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var points []*domain.SurveyPoint
	for rows.Next() {
		var p domain.SurveyPoint
		if err := r.scanRows(rows, &p); err != nil {
			r.logger.Error("Failed to scan borehole", zap.Error(err))
			continue
		}
		points = append(points, &p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate boreholes", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return points, nil
}

func (r *boreholeRepository) scanRow(row *sql.Row, p *domain.SurveyPoint) error {
	return row.Scan(
		&p.ID, &p.Name, &p.GridX, &p.GridY,
		&p.GeoLat, &p.GeoLon, &p.ProjX, &p.ProjY,
		&p.Depth, &p.CreatedAt, &p.EnrichedAt,
	)
}

func (r *boreholeRepository) scanRows(rows *sql.Rows, p *domain.SurveyPoint) error {
	return rows.Scan(
		&p.ID, &p.Name, &p.GridX, &p.GridY,
		&p.GeoLat, &p.GeoLon, &p.ProjX, &p.ProjY,
		&p.Depth, &p.CreatedAt, &p.EnrichedAt,
	)
}
