package crs

import (
	"math"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/borehole-microservice/internal/pkg/errors"
)

const defaultCacheCapacity = 4096

// XY - пара координат. Для Geographic X - широта, Y - долгота (градусы);
// для плоских систем X - easting, Y - northing (метры).
type XY struct {
	X float64
	Y float64
}

// BatchResult - результат преобразования одной точки batch-вызова.
// Ошибки отдаются поэлементно, весь batch не прерывается.
type BatchResult struct {
	X   float64
	Y   float64
	Err error
}

// Service - сервис преобразования координат между национальной сеткой,
// географической системой и локальной проекционной системой (UTM).
// Объекты проекций создаются один раз на пару (система, зона) и
// переиспользуются; недавние конвертации кэшируются в ограниченном
// LRU. Явный инжектируемый экземпляр, без глобального состояния.
type Service struct {
	logger *zap.Logger
	cache  *lruCache
	grid   *transverseMercator

	mu  sync.RWMutex
	utm map[Frame]*transverseMercator
}

// NewService создаёт сервис преобразований. cacheCapacity <= 0 использует
// ёмкость по умолчанию.
func NewService(logger *zap.Logger, cacheCapacity int) *Service {
	return &Service{
		logger: logger,
		cache:  newLRUCache(cacheCapacity),
		grid:   newNationalGrid(),
		utm:    make(map[Frame]*transverseMercator),
	}
}

// utmFor возвращает проекцию зоны, создавая её при первом обращении
func (s *Service) utmFor(frame Frame) *transverseMercator {
	s.mu.RLock()
	p, ok := s.utm[frame]
	s.mu.RUnlock()
	if ok {
		return p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok = s.utm[frame]; ok {
		return p
	}
	p = newUTM(frame)
	s.utm[frame] = p
	s.logger.Debug("UTM projection constructed",
		zap.Int("zone", frame.Zone),
		zap.Bool("south", frame.South))
	return p
}

// frameForLatLon выводит рамку UTM из географической точки
func frameForLatLon(lat, lon float64) Frame {
	return Frame{Zone: utmZoneFor(lon), South: lat < 0}
}

// TransformPoint преобразует одну точку между системами. Для
// LocalProjected в качестве цели рамка выводится из самой точки; если
// LocalProjected - источник, рамку нужно передать через
// TransformPointInFrame.
func (s *Service) TransformPoint(src, dst System, x, y float64) (float64, float64, error) {
	return s.transform(Frame{}, src, dst, x, y)
}

// TransformPointInFrame преобразует точку в явно заданной локальной рамке
func (s *Service) TransformPointInFrame(frame Frame, src, dst System, x, y float64) (float64, float64, error) {
	return s.transform(frame, src, dst, x, y)
}

// FrameFor выводит локальную рамку из центроида точек src-системы.
// Рамка выбирается один раз на batch: все точки одного геометрического
// вычисления обязаны разделять одну рамку.
func (s *Service) FrameFor(src System, pts []XY) (Frame, error) {
	if len(pts) == 0 {
		return Frame{}, apperrors.ErrTransformFailure.WithDetails(map[string]interface{}{
			"reason": "cannot derive local frame from empty batch",
		})
	}

	var cx, cy float64
	valid := 0
	for _, p := range pts {
		if !isFinite(p.X) || !isFinite(p.Y) {
			continue
		}
		cx += p.X
		cy += p.Y
		valid++
	}
	if valid == 0 {
		return Frame{}, apperrors.ErrInvalidCoordinate
	}
	cx /= float64(valid)
	cy /= float64(valid)

	lat, lon := cx, cy
	switch src {
	case Geographic:
	case NationalGrid:
		lat, lon = s.grid.Inverse(cx, cy)
	default:
		return Frame{}, apperrors.ErrTransformFailure.WithDetails(map[string]interface{}{
			"reason": "local frame must be derived from geographic or grid coordinates",
		})
	}
	if !validLatLon(lat, lon) {
		return Frame{}, apperrors.ErrInvalidCoordinate
	}
	return frameForLatLon(lat, lon), nil
}

// TransformBatch преобразует все точки одним проходом. Рамка UTM (если
// цель - LocalProjected) выводится один раз из центроида и возвращается
// вызывающему для обратного преобразования. Ошибки отдельных точек
// попадают в соответствующий BatchResult, batch не прерывается.
func (s *Service) TransformBatch(src, dst System, pts []XY) ([]BatchResult, Frame) {
	frame := Frame{}
	if dst == LocalProjected {
		if f, err := s.FrameFor(src, pts); err == nil {
			frame = f
		}
	}
	return s.TransformBatchInFrame(frame, src, dst, pts), frame
}

// TransformBatchInFrame преобразует batch в явно заданной рамке.
// Результат имеет ту же длину и порядок, что и вход.
func (s *Service) TransformBatchInFrame(frame Frame, src, dst System, pts []XY) []BatchResult {
	results := make([]BatchResult, len(pts))
	for i, p := range pts {
		x, y, err := s.transform(frame, src, dst, p.X, p.Y)
		results[i] = BatchResult{X: x, Y: y, Err: err}
	}
	return results
}

func (s *Service) transform(frame Frame, src, dst System, x, y float64) (float64, float64, error) {
	if !src.Valid() || !dst.Valid() {
		return 0, 0, apperrors.ErrTransformFailure.WithDetails(map[string]interface{}{
			"source": string(src),
			"target": string(dst),
		})
	}
	if !isFinite(x) || !isFinite(y) {
		return 0, 0, apperrors.ErrInvalidCoordinate
	}
	if src == Geographic && !validLatLon(x, y) {
		return 0, 0, apperrors.ErrInvalidCoordinate
	}
	if src == dst {
		return x, y, nil
	}
	if src == LocalProjected && frame.Zone == 0 {
		return 0, 0, apperrors.ErrTransformFailure.WithDetails(map[string]interface{}{
			"reason": "local projected source requires an explicit frame",
		})
	}

	key := cacheKey{
		src:   src,
		dst:   dst,
		zone:  frame.Zone,
		south: frame.South,
		rx:    roundCoord(src, x),
		ry:    roundCoord(src, y),
	}
	if cx, cy, ok := s.cache.get(key); ok {
		return cx, cy, nil
	}

	// Все пары систем идут через географический хаб
	lat, lon := x, y
	switch src {
	case NationalGrid:
		lat, lon = s.grid.Inverse(x, y)
	case LocalProjected:
		lat, lon = s.utmFor(frame).Inverse(x, y)
	}

	// Географические границы после преобразования: ошибка, не clamping
	if !validLatLon(lat, lon) {
		return 0, 0, apperrors.ErrInvalidCoordinate.WithDetails(map[string]interface{}{
			"lat": lat,
			"lon": lon,
		})
	}

	var outX, outY float64
	switch dst {
	case Geographic:
		outX, outY = lat, lon
	case NationalGrid:
		outX, outY = s.grid.Forward(lat, lon)
	case LocalProjected:
		f := frame
		if f.Zone == 0 {
			f = frameForLatLon(lat, lon)
		}
		outX, outY = s.utmFor(f).Forward(lat, lon)
	}

	if !isFinite(outX) || !isFinite(outY) {
		return 0, 0, apperrors.ErrTransformFailure
	}

	s.cache.put(key, outX, outY)
	return outX, outY, nil
}

// CacheLen возвращает число записей в кэше конвертаций
func (s *Service) CacheLen() int {
	return s.cache.len()
}

// roundCoord округляет координату для ключа кэша с точностью ~1 см:
// 1e-8 градуса для географических координат, 0.01 м для плоских
func roundCoord(sys System, v float64) int64 {
	scale := 100.0
	if sys == Geographic {
		scale = 1e8
	}
	return int64(math.Round(v * scale))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validLatLon(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
