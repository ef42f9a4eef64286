package spatial

import (
	"math"

	"github.com/golang/geo/s2"
	"go.uber.org/zap"

	"github.com/borehole-microservice/internal/domain"
	"github.com/borehole-microservice/internal/geo/crs"
	apperrors "github.com/borehole-microservice/internal/pkg/errors"
)

const (
	// earthRadiusMeters - средний радиус Земли
	earthRadiusMeters = 6371000.0

	// defaultArcSegments - число сегментов на полуокружность торцов
	// и вырожденного кругового коридора
	defaultArcSegments = 16

	// dedupeToleranceMeters - порог слияния совпадающих вершин полилинии
	dedupeToleranceMeters = 0.01
)

// CorridorBuilder строит буферный коридор постоянной реальной ширины
// вокруг полилинии. Геометрия считается в локальной проекционной
// системе (метры), результат возвращается в географических координатах.
type CorridorBuilder struct {
	transforms  *crs.Service
	logger      *zap.Logger
	arcSegments int
}

// NewCorridorBuilder создаёт генератор коридоров. arcSegments <= 0
// использует значение по умолчанию.
func NewCorridorBuilder(transforms *crs.Service, logger *zap.Logger, arcSegments int) *CorridorBuilder {
	if arcSegments <= 0 {
		arcSegments = defaultArcSegments
	}
	return &CorridorBuilder{
		transforms:  transforms,
		logger:      logger,
		arcSegments: arcSegments,
	}
}

type vec2 struct{ x, y float64 }

func (v vec2) add(o vec2) vec2      { return vec2{v.x + o.x, v.y + o.y} }
func (v vec2) sub(o vec2) vec2      { return vec2{v.x - o.x, v.y - o.y} }
func (v vec2) scale(k float64) vec2 { return vec2{v.x * k, v.y * k} }
func (v vec2) norm() float64        { return math.Hypot(v.x, v.y) }
func (v vec2) dot(o vec2) float64   { return v.x*o.x + v.y*o.y }

// perp возвращает левую нормаль
func (v vec2) perp() vec2 { return vec2{-v.y, v.x} }

func (v vec2) unit() vec2 {
	n := v.norm()
	if n == 0 {
		return vec2{}
	}
	return v.scale(1.0 / n)
}

// BuildCorridor строит замкнутое кольцо коридора вокруг полилинии.
// Полуширина задаётся в метрах; halfWidthMeters <= 0 - ошибка входа.
// Вырожденная полилиния (все вершины совпадают) даёт круговой коридор
// заданной полуширины. Кольцо нигде не уже halfWidthMeters: внешняя
// сторона стыка идёт веером дуги точно на радиусе полуширины,
// внутренняя выносится до пересечения линий смещения, торцы
// закрываются полуокружностями.
func (b *CorridorBuilder) BuildCorridor(polyline []domain.Point, halfWidthMeters float64) (domain.BufferPolygon, error) {
	if halfWidthMeters <= 0 || !finite(halfWidthMeters) {
		return domain.BufferPolygon{}, apperrors.ErrInvalidBufferWidth.WithDetails(map[string]interface{}{
			"half_width_meters": halfWidthMeters,
		})
	}

	pts, frame, err := b.localPolyline(polyline)
	if err != nil {
		return domain.BufferPolygon{}, err
	}

	var ring []vec2
	if len(pts) == 1 {
		// Вырожденный случай: круговой коридор вокруг точки
		ring = b.circleRing(pts[0], halfWidthMeters)
	} else {
		ring = b.corridorRing(pts, halfWidthMeters)
	}

	// Обратно в географические координаты в той же рамке
	ringXY := make([]crs.XY, len(ring))
	for i, p := range ring {
		ringXY[i] = crs.XY{X: p.x, Y: p.y}
	}
	back := b.transforms.TransformBatchInFrame(frame, crs.LocalProjected, crs.Geographic, ringXY)

	vertices := make([]domain.Point, 0, len(back)+1)
	for _, r := range back {
		if r.Err != nil {
			return domain.BufferPolygon{}, r.Err
		}
		vertices = append(vertices, domain.Point{Lat: r.X, Lon: r.Y})
	}
	// Замыкаем кольцо
	if len(vertices) > 0 && vertices[0] != vertices[len(vertices)-1] {
		vertices = append(vertices, vertices[0])
	}

	b.logger.Debug("Corridor built",
		zap.Int("polyline_vertices", len(polyline)),
		zap.Int("ring_vertices", len(vertices)),
		zap.Float64("half_width_m", halfWidthMeters),
		zap.Int("utm_zone", frame.Zone))

	return domain.BufferPolygon{Vertices: vertices}, nil
}

// WithinCorridor возвращает маску точек, лежащих не дальше
// halfWidthMeters от полилинии. Расстояние меряется до ближайшего
// сегмента в локальной рамке, поэтому результат не зависит от
// топологии кольца коридора на острых стыках. Для вырожденной
// полилинии расстояние меряется по гаверсинусу до её вершины.
func (b *CorridorBuilder) WithinCorridor(polyline []domain.Point, points []domain.Point, halfWidthMeters float64) ([]bool, error) {
	if halfWidthMeters <= 0 || !finite(halfWidthMeters) {
		return nil, apperrors.ErrInvalidBufferWidth.WithDetails(map[string]interface{}{
			"half_width_meters": halfWidthMeters,
		})
	}

	pts, frame, err := b.localPolyline(polyline)
	if err != nil {
		return nil, err
	}

	within := make([]bool, len(points))
	if len(pts) == 1 {
		center := polyline[0]
		for i, p := range points {
			within[i] = HaversineMeters(center, p) <= halfWidthMeters
		}
		return within, nil
	}

	geoXY := make([]crs.XY, len(points))
	for i, p := range points {
		geoXY[i] = crs.XY{X: p.Lat, Y: p.Lon}
	}
	local := b.transforms.TransformBatchInFrame(frame, crs.Geographic, crs.LocalProjected, geoXY)

	for i, r := range local {
		if r.Err != nil {
			continue
		}
		q := vec2{r.X, r.Y}
		for j := 0; j+1 < len(pts); j++ {
			if pointSegmentDistance(q, pts[j], pts[j+1]) <= halfWidthMeters {
				within[i] = true
				break
			}
		}
	}
	return within, nil
}

// localPolyline переводит полилинию в локальную рамку и сливает
// практически совпадающие соседние вершины. Рамка выводится из
// полилинии и возвращается для преобразований в том же вызове.
func (b *CorridorBuilder) localPolyline(polyline []domain.Point) ([]vec2, crs.Frame, error) {
	if len(polyline) == 0 {
		return nil, crs.Frame{}, apperrors.ErrInvalidShape.WithDetails(map[string]interface{}{
			"reason": "polyline has no vertices",
		})
	}

	geoPts := make([]crs.XY, len(polyline))
	for i, p := range polyline {
		geoPts[i] = crs.XY{X: p.Lat, Y: p.Lon}
	}
	results, frame := b.transforms.TransformBatch(crs.Geographic, crs.LocalProjected, geoPts)

	local := make([]vec2, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			return nil, crs.Frame{}, r.Err
		}
		local = append(local, vec2{r.X, r.Y})
	}

	pts := local[:1]
	for _, p := range local[1:] {
		if p.sub(pts[len(pts)-1]).norm() > dedupeToleranceMeters {
			pts = append(pts, p)
		}
	}
	return pts, frame, nil
}

// circleRing аппроксимирует окружность радиуса w вокруг центра
func (b *CorridorBuilder) circleRing(center vec2, w float64) []vec2 {
	n := b.arcSegments * 2
	ring := make([]vec2, 0, n)
	for i := 0; i < n; i++ {
		a := 2.0 * math.Pi * float64(i) / float64(n)
		ring = append(ring, center.add(vec2{math.Cos(a), math.Sin(a)}.scale(w)))
	}
	return ring
}

// corridorRing строит кольцо: левая сторона вперёд, полуокружность на
// дальнем торце, правая сторона назад, полуокружность на ближнем торце.
// Внешняя сторона каждого стыка - веер дуги на радиусе ровно w, поэтому
// граница в стыке никогда не подходит к полилинии ближе w.
func (b *CorridorBuilder) corridorRing(pts []vec2, w float64) []vec2 {
	n := len(pts)
	dirs := make([]vec2, n-1)
	for i := 0; i < n-1; i++ {
		dirs[i] = pts[i+1].sub(pts[i]).unit()
	}

	left := []vec2{pts[0].add(dirs[0].perp().scale(w))}
	right := []vec2{pts[0].sub(dirs[0].perp().scale(w))}

	for i := 1; i < n-1; i++ {
		d1, d2 := dirs[i-1], dirs[i]
		n1, n2 := d1.perp(), d2.perp()
		turn := math.Atan2(d1.x*d2.y-d1.y*d2.x, d1.dot(d2))

		switch {
		case turn < 0:
			// Поворот направо: внешняя сторона левая
			left = append(left, pts[i].add(n1.scale(w)))
			left = append(left, b.arcFan(pts[i], n1, turn, w)...)
			left = append(left, pts[i].add(n2.scale(w)))
			right = append(right, innerJoint(pts[i], n1, n2, w, -1))
		case turn > 0:
			// Поворот налево: внешняя сторона правая; её веер строится
			// вперёд и разворачивается при обходе кольца
			right = append(right, pts[i].sub(n1.scale(w)))
			right = append(right, b.arcFan(pts[i], n1.scale(-1), turn, w)...)
			right = append(right, pts[i].sub(n2.scale(w)))
			left = append(left, innerJoint(pts[i], n1, n2, w, 1))
		default:
			left = append(left, pts[i].add(n1.scale(w)))
			right = append(right, pts[i].sub(n1.scale(w)))
		}
	}

	last := n - 1
	left = append(left, pts[last].add(dirs[last-1].perp().scale(w)))
	right = append(right, pts[last].sub(dirs[last-1].perp().scale(w)))

	ring := make([]vec2, 0, len(left)+len(right)+2*b.arcSegments)
	ring = append(ring, left...)
	ring = append(ring, b.arcFan(pts[last], dirs[last-1].perp(), -math.Pi, w)...)
	for i := len(right) - 1; i >= 0; i-- {
		ring = append(ring, right[i])
	}
	ring = append(ring, b.arcFan(pts[0], dirs[0].perp().scale(-1), -math.Pi, w)...)
	return ring
}

// arcFan строит дугу радиуса w вокруг центра от направления from,
// заметая угол sweep (знак задаёт направление обхода). Крайние точки
// дуги не включаются - их ставит вызывающий.
func (b *CorridorBuilder) arcFan(center, from vec2, sweep, w float64) []vec2 {
	segments := int(math.Ceil(math.Abs(sweep) / math.Pi * float64(b.arcSegments)))
	if segments < 1 {
		segments = 1
	}

	a0 := math.Atan2(from.y, from.x)
	out := make([]vec2, 0, segments)
	for i := 1; i < segments; i++ {
		a := a0 + sweep*float64(i)/float64(segments)
		out = append(out, center.add(vec2{math.Cos(a), math.Sin(a)}.scale(w)))
	}
	return out
}

// innerJoint - вершина внутренней стороны стыка: пересечение линий
// смещения обоих сегментов. Точка лежит не ближе w к каждому из
// сегментов; на почти разворотных стыках вынос растёт, но коридор от
// этого только шире.
func innerJoint(p, n1, n2 vec2, w, side float64) vec2 {
	m := n1.add(n2).unit()
	if m.norm() == 0 {
		// Точный разворот: линии смещения параллельны
		return p.add(n1.scale(w * side))
	}
	return p.add(m.scale(w / m.dot(n2) * side))
}

// pointSegmentDistance - расстояние от точки до отрезка
func pointSegmentDistance(p, a, b vec2) float64 {
	ab := b.sub(a)
	den := ab.dot(ab)
	if den == 0 {
		return p.sub(a).norm()
	}
	t := p.sub(a).dot(ab) / den
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.sub(a.add(ab.scale(t))).norm()
}

// HaversineMeters - расстояние между географическими точками в метрах
func HaversineMeters(a, b domain.Point) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * earthRadiusMeters
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
