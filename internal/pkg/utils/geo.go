package utils

import "math"

const (
	earthRadiusKm = 6371.0

	// CoordScale - множитель фиксированной точки для координат (микроградусы)
	CoordScale = 1_000_000
)

// HaversineDistance вычисляет расстояние между двумя точками в километрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// ApproxWithinRadius - быстрая приближённая проверка попадания точки в круг.
// Сравнивает квадрат разности сырых координат (в микроградусах) с квадратом
// радиуса в метрах. Размерности не совпадают умышленно: проверка воспроизводит
// поведение исходных контрактов и пригодна только для малых радиусов вблизи
// экватора. Точный вариант - HaversineWithinRadius.
func ApproxWithinRadius(latE6, lonE6, centerLatE6, centerLonE6, radiusM int64) bool {
	dLat := latE6 - centerLatE6
	dLon := lonE6 - centerLonE6
	return dLat*dLat+dLon*dLon <= radiusM*radiusM
}

// HaversineWithinRadius проверяет попадание точки в круг по дуге большого круга
func HaversineWithinRadius(latE6, lonE6, centerLatE6, centerLonE6, radiusM int64) bool {
	distKm := HaversineDistance(
		DegreesFromE6(latE6), DegreesFromE6(lonE6),
		DegreesFromE6(centerLatE6), DegreesFromE6(centerLonE6),
	)
	return distKm*1000 <= float64(radiusM)
}

// DegreesFromE6 переводит микроградусы в градусы
func DegreesFromE6(v int64) float64 {
	return float64(v) / CoordScale
}

// E6FromDegrees переводит градусы в микроградусы
func E6FromDegrees(v float64) int64 {
	return int64(math.Round(v * CoordScale))
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
