package crs

// System - поддерживаемая система координат
type System string

const (
	// NationalGrid - национальная плоская сетка (eastings/northings, метры),
	// в которой поступают исходные данные изысканий
	NationalGrid System = "national_grid"

	// Geographic - широта/долгота в градусах
	Geographic System = "geographic"

	// LocalProjected - локально точная плоская система (зона UTM),
	// используется для метрических вычислений
	LocalProjected System = "local_projected"
)

// Valid проверяет, что система известна сервису
func (s System) Valid() bool {
	switch s {
	case NationalGrid, Geographic, LocalProjected:
		return true
	}
	return false
}

// Frame - локальная проекционная рамка (зона UTM) для batch-операций.
// Все точки одного геометрического вычисления обязаны разделять одну
// рамку; смешение рамок - ошибка вызывающей стороны.
type Frame struct {
	Zone  int  `json:"zone"`
	South bool `json:"south"`
}

// projection конвертирует между географическими координатами и одной
// плоской системой. Объекты проекций создаются один раз на пару
// (система, зона) и переиспользуются между вызовами.
type projection interface {
	// Forward: (lat, lon) в градусах -> (x, y) в метрах
	Forward(lat, lon float64) (x, y float64)
	// Inverse: (x, y) в метрах -> (lat, lon) в градусах
	Inverse(x, y float64) (lat, lon float64)
}
