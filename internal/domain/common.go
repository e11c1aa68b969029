package domain

import "github.com/safety-microservice/internal/pkg/utils"

// Point - координаты с фиксированной точкой (микроградусы), как в исходных
// контрактах. Конвертация в градусы только на границах системы.
type Point struct {
	LatE6 int64 `json:"lat_e6" db:"lat_e6"`
	LonE6 int64 `json:"lon_e6" db:"lon_e6"`
}

// PointFromDegrees строит Point из координат в градусах
func PointFromDegrees(lat, lon float64) Point {
	return Point{
		LatE6: utils.E6FromDegrees(lat),
		LonE6: utils.E6FromDegrees(lon),
	}
}

// LatDegrees возвращает широту в градусах
func (p Point) LatDegrees() float64 {
	return utils.DegreesFromE6(p.LatE6)
}

// LonDegrees возвращает долготу в градусах
func (p Point) LonDegrees() float64 {
	return utils.DegreesFromE6(p.LonE6)
}
