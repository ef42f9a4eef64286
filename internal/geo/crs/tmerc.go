package crs

import "math"

const (
	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi

	// GRS80
	semiMajor         = 6378137.0
	inverseFlattening = 298.257222101
)

// Параметры национальной сетки (поперечная проекция Меркатора,
// OSGB-подобные константы). Сдвиги датумов вне рассмотрения: все три
// системы считаются на одном эллипсоиде, что сохраняет точность
// round-trip преобразований.
const (
	gridLat0 = 49.0
	gridLon0 = -2.0
	gridK0   = 0.9996012717
	gridFE   = 400000.0
	gridFN   = -100000.0
)

// Параметры UTM
const (
	utmK0      = 0.9996
	utmFE      = 500000.0
	utmFNSouth = 10000000.0
)

// transverseMercator - эллипсоидальная поперечная проекция Меркатора.
// Прямое и обратное преобразования по стандартным рядам (меридиональная
// дуга + члены I..XIIA), точность лучше миллиметра в пределах зоны.
type transverseMercator struct {
	a, b, e2, n3 float64 // эллипсоид; n3 = (a-b)/(a+b)
	lat0, lon0   float64 // начало координат, радианы
	k0, fe, fn   float64
}

func newTransverseMercator(lat0Deg, lon0Deg, k0, fe, fn float64) *transverseMercator {
	a := semiMajor
	f := 1.0 / inverseFlattening
	b := a * (1.0 - f)
	return &transverseMercator{
		a:    a,
		b:    b,
		e2:   (a*a - b*b) / (a * a),
		n3:   (a - b) / (a + b),
		lat0: lat0Deg * deg2rad,
		lon0: lon0Deg * deg2rad,
		k0:   k0,
		fe:   fe,
		fn:   fn,
	}
}

// newNationalGrid возвращает проекцию национальной сетки
func newNationalGrid() *transverseMercator {
	return newTransverseMercator(gridLat0, gridLon0, gridK0, gridFE, gridFN)
}

// newUTM возвращает проекцию зоны UTM
func newUTM(frame Frame) *transverseMercator {
	lon0 := float64(frame.Zone)*6.0 - 183.0
	fn := 0.0
	if frame.South {
		fn = utmFNSouth
	}
	return newTransverseMercator(0, lon0, utmK0, utmFE, fn)
}

// utmZoneFor вычисляет зону UTM для долготы
func utmZoneFor(lon float64) int {
	zone := int(math.Floor((lon+180.0)/6.0)) + 1
	if zone < 1 {
		zone = 1
	}
	if zone > 60 {
		zone = 60
	}
	return zone
}

// meridionalArc - длина дуги меридиана от lat0 до phi (с учётом k0)
func (p *transverseMercator) meridionalArc(phi float64) float64 {
	n := p.n3
	n2 := n * n
	dPhi := phi - p.lat0
	sPhi := phi + p.lat0
	return p.b * p.k0 * ((1.0+n+1.25*n2+1.25*n2*n)*dPhi -
		(3.0*n+3.0*n2+(21.0/8.0)*n2*n)*math.Sin(dPhi)*math.Cos(sPhi) +
		((15.0/8.0)*(n2+n2*n))*math.Sin(2.0*dPhi)*math.Cos(2.0*sPhi) -
		(35.0/24.0)*n2*n*math.Sin(3.0*dPhi)*math.Cos(3.0*sPhi))
}

func (p *transverseMercator) Forward(latDeg, lonDeg float64) (x, y float64) {
	phi := latDeg * deg2rad
	lam := lonDeg * deg2rad

	sinPhi, cosPhi := math.Sincos(phi)
	tanPhi := sinPhi / cosPhi
	tan2 := tanPhi * tanPhi
	cos3 := cosPhi * cosPhi * cosPhi
	cos5 := cos3 * cosPhi * cosPhi

	nu := p.a * p.k0 / math.Sqrt(1.0-p.e2*sinPhi*sinPhi)
	rho := p.a * p.k0 * (1.0 - p.e2) / math.Pow(1.0-p.e2*sinPhi*sinPhi, 1.5)
	eta2 := nu/rho - 1.0

	i := p.meridionalArc(phi) + p.fn
	ii := nu / 2.0 * sinPhi * cosPhi
	iii := nu / 24.0 * sinPhi * cos3 * (5.0 - tan2 + 9.0*eta2)
	iiia := nu / 720.0 * sinPhi * cos5 * (61.0 - 58.0*tan2 + tan2*tan2)
	iv := nu * cosPhi
	v := nu / 6.0 * cos3 * (nu/rho - tan2)
	vi := nu / 120.0 * cos5 * (5.0 - 18.0*tan2 + tan2*tan2 + 14.0*eta2 - 58.0*tan2*eta2)

	dl := lam - p.lon0
	dl2 := dl * dl

	y = i + ii*dl2 + iii*dl2*dl2 + iiia*dl2*dl2*dl2
	x = p.fe + iv*dl + v*dl*dl2 + vi*dl*dl2*dl2
	return x, y
}

func (p *transverseMercator) Inverse(x, y float64) (latDeg, lonDeg float64) {
	ak0 := p.a * p.k0

	// Подбор широты по меридиональной дуге, сходится за 2-4 итерации
	phi := (y-p.fn)/ak0 + p.lat0
	m := p.meridionalArc(phi)
	for i := 0; math.Abs(y-p.fn-m) >= 1e-5 && i < 16; i++ {
		phi += (y - p.fn - m) / ak0
		m = p.meridionalArc(phi)
	}

	sinPhi, cosPhi := math.Sincos(phi)
	tanPhi := sinPhi / cosPhi
	secPhi := 1.0 / cosPhi
	tan2 := tanPhi * tanPhi
	tan4 := tan2 * tan2

	nu := ak0 / math.Sqrt(1.0-p.e2*sinPhi*sinPhi)
	rho := ak0 * (1.0 - p.e2) / math.Pow(1.0-p.e2*sinPhi*sinPhi, 1.5)
	eta2 := nu/rho - 1.0
	nu3 := nu * nu * nu
	nu5 := nu3 * nu * nu
	nu7 := nu5 * nu * nu

	vii := tanPhi / (2.0 * rho * nu)
	viii := tanPhi / (24.0 * rho * nu3) * (5.0 + 3.0*tan2 + eta2 - 9.0*tan2*eta2)
	ix := tanPhi / (720.0 * rho * nu5) * (61.0 + 90.0*tan2 + 45.0*tan4)
	xTerm := secPhi / nu
	xi := secPhi / (6.0 * nu3) * (nu/rho + 2.0*tan2)
	xii := secPhi / (120.0 * nu5) * (5.0 + 28.0*tan2 + 24.0*tan4)
	xiia := secPhi / (5040.0 * nu7) * (61.0 + 662.0*tan2 + 1320.0*tan4 + 720.0*tan4*tan2)

	de := x - p.fe
	de2 := de * de

	lat := phi - vii*de2 + viii*de2*de2 - ix*de2*de2*de2
	lon := p.lon0 + xTerm*de - xi*de*de2 + xii*de*de2*de2 - xiia*de*de2*de2*de2

	return lat * rad2deg, lon * rad2deg
}
