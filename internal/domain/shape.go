package domain

// Shape - дескриптор фигуры выбора, закрытое множество вариантов:
// полигон, прямоугольник или полилиния с буферной зоной.
// Дескриптор неизменяем; актуален всегда ровно один (замена - забота
// вызывающей стороны, история здесь не хранится).
type Shape interface {
	isShape()
}

// PolygonShape - произвольный полигон, вершины в порядке обхода.
// Замыкание кольца не требуется: если первая и последняя вершины не
// совпадают, кольцо замыкается при проверке.
type PolygonShape struct {
	Vertices []Point `json:"vertices"`
}

// RectangleShape - прямоугольник по двум диагональным углам.
// Порядок углов не важен, min/max нормализуются при проверке.
type RectangleShape struct {
	CornerA Point `json:"corner_a"`
	CornerB Point `json:"corner_b"`
}

// PolylineShape - полилиния с шириной буферного коридора.
type PolylineShape struct {
	Vertices        []Point `json:"vertices"`
	HalfWidthMeters float64 `json:"half_width_meters"`
}

func (PolygonShape) isShape()   {}
func (RectangleShape) isShape() {}
func (PolylineShape) isShape()  {}

// BufferPolygon - замкнутое кольцо коридора постоянной ширины вокруг
// полилинии, в географических координатах. Первая и последняя вершины
// совпадают. Инвариант: каждая вершина исходной полилинии лежит внутри
// коридора не дальше halfWidth от его границы.
type BufferPolygon struct {
	Vertices []Point `json:"vertices"`
}

// Ring возвращает вершины кольца
func (b BufferPolygon) Ring() []Point {
	return b.Vertices
}

// Bounds возвращает bbox коридора (для быстрой предфильтрации)
func (b BufferPolygon) Bounds() BoundingBox {
	if len(b.Vertices) == 0 {
		return BoundingBox{}
	}
	bb := BoundingBox{
		MinLat: b.Vertices[0].Lat, MaxLat: b.Vertices[0].Lat,
		MinLon: b.Vertices[0].Lon, MaxLon: b.Vertices[0].Lon,
	}
	for _, v := range b.Vertices[1:] {
		if v.Lat < bb.MinLat {
			bb.MinLat = v.Lat
		}
		if v.Lat > bb.MaxLat {
			bb.MaxLat = v.Lat
		}
		if v.Lon < bb.MinLon {
			bb.MinLon = v.Lon
		}
		if v.Lon > bb.MaxLon {
			bb.MaxLon = v.Lon
		}
	}
	return bb
}
