package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApproxWithinRadius(t *testing.T) {
	tests := []struct {
		name     string
		latE6    int64
		lonE6    int64
		cLatE6   int64
		cLonE6   int64
		radiusM  int64
		expected bool
	}{
		{
			name:     "point at center",
			latE6:    0, lonE6: 0, cLatE6: 0, cLonE6: 0,
			radiusM:  100,
			expected: true,
		},
		{
			name:     "point exactly on boundary is inside",
			latE6:    60, lonE6: 80, cLatE6: 0, cLonE6: 0,
			radiusM:  100,
			expected: true, // 60^2 + 80^2 == 100^2
		},
		{
			name:     "point just outside boundary",
			latE6:    60, lonE6: 81, cLatE6: 0, cLonE6: 0,
			radiusM:  100,
			expected: false,
		},
		{
			name:     "offset center",
			latE6:    1_000_050, lonE6: 2_000_000, cLatE6: 1_000_000, cLonE6: 2_000_000,
			radiusM:  100,
			expected: true,
		},
		{
			name:     "far away point",
			latE6:    41_402_704, lonE6: 2_159_956, cLatE6: 48_856_614, cLonE6: 2_352_222,
			radiusM:  5000,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApproxWithinRadius(tt.latE6, tt.lonE6, tt.cLatE6, tt.cLonE6, tt.radiusM)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestApproxWithinRadius_Deterministic(t *testing.T) {
	// Чистая функция: повторный вызов с теми же входами даёт тот же результат
	for i := 0; i < 3; i++ {
		assert.True(t, ApproxWithinRadius(50, 50, 0, 0, 100))
		assert.False(t, ApproxWithinRadius(5000, 5000, 0, 0, 100))
	}
}

func TestHaversineWithinRadius(t *testing.T) {
	// Две точки в Барселоне примерно в 1.1 км друг от друга
	placaCatalunyaLat := E6FromDegrees(41.3870)
	placaCatalunyaLon := E6FromDegrees(2.1701)
	sagradaLat := E6FromDegrees(41.4036)
	sagradaLon := E6FromDegrees(2.1744)

	assert.True(t, HaversineWithinRadius(sagradaLat, sagradaLon, placaCatalunyaLat, placaCatalunyaLon, 3000))
	assert.False(t, HaversineWithinRadius(sagradaLat, sagradaLon, placaCatalunyaLat, placaCatalunyaLon, 500))

	// Точка в центре всегда внутри
	assert.True(t, HaversineWithinRadius(placaCatalunyaLat, placaCatalunyaLon, placaCatalunyaLat, placaCatalunyaLon, 1))
}

func TestHaversineDistance(t *testing.T) {
	// Барселона -> Париж, около 830 км
	dist := HaversineDistance(41.3851, 2.1734, 48.8566, 2.3522)
	assert.InDelta(t, 830, dist, 10)

	// Нулевое расстояние
	assert.Equal(t, 0.0, HaversineDistance(41.3851, 2.1734, 41.3851, 2.1734))
}

func TestE6Conversions(t *testing.T) {
	tests := []struct {
		degrees float64
		e6      int64
	}{
		{0, 0},
		{41.3851, 41_385_100},
		{-73.9857, -73_985_700},
		{90, 90_000_000},
		{-180, -180_000_000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.e6, E6FromDegrees(tt.degrees))
		assert.InDelta(t, tt.degrees, DegreesFromE6(tt.e6), 1e-9)
	}
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(0, 0))
	assert.True(t, ValidateCoordinates(90, 180))
	assert.True(t, ValidateCoordinates(-90, -180))
	assert.False(t, ValidateCoordinates(90.1, 0))
	assert.False(t, ValidateCoordinates(0, 180.1))
	assert.False(t, ValidateCoordinates(-91, 0))
}
