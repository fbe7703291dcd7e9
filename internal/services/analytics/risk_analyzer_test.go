package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketMCP/internal/domain/models"
)

func ohlcv(closes, volumes []float64) models.Series {
	s := make(models.Series, len(closes))
	for i := range closes {
		s[i] = models.PricePoint{Time: i, Close: closes[i], Volume: volumes[i]}
	}
	return s
}

func TestRiskAnalyzer_ConstantSeries(t *testing.T) {
	res, err := NewRiskAnalyzer().Analyze(models.RiskRequest{
		Symbol: "MSFT",
		Series: ohlcv([]float64{100, 100, 100, 100}, []float64{5, 5, 5, 5}),
	})
	require.NoError(t, err)

	assert.Equal(t, "MSFT", res.Symbol)
	assert.Equal(t, 0.0, res.Volatility)
	assert.Equal(t, models.RiskLow, res.RiskScore)
	assert.NotNil(t, res.Anomalies)
	assert.Empty(t, res.Anomalies)
}

func TestRiskAnalyzer_ZeroMeanCloses(t *testing.T) {
	res, err := NewRiskAnalyzer().Analyze(models.RiskRequest{
		Series: ohlcv([]float64{-1, 1}, []float64{10, 20}),
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.Volatility)
	assert.False(t, math.IsNaN(res.Volatility))
	assert.Equal(t, models.RiskLow, res.RiskScore)
}

func TestRiskAnalyzer_SinglePoint(t *testing.T) {
	res, err := NewRiskAnalyzer().Analyze(models.RiskRequest{
		Series: ohlcv([]float64{50}, []float64{1000}),
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.Volatility)
	assert.Empty(t, res.Anomalies)
}

func TestRiskAnalyzer_Tiers(t *testing.T) {
	testCases := []struct {
		name   string
		closes []float64
		want   models.RiskTier
	}{
		// population std of [a, b] is |a-b|/2, so cv = |a-b| / (a+b)
		{name: "low", closes: []float64{98, 102}, want: models.RiskLow},         // 0.02
		{name: "medium", closes: []float64{90, 110}, want: models.RiskMedium},   // 0.10
		{name: "high", closes: []float64{80, 120}, want: models.RiskHigh},       // 0.20
		{name: "just above medium", closes: []float64{94.9, 105.1}, want: models.RiskMedium},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := NewRiskAnalyzer().Analyze(models.RiskRequest{
				Series: ohlcv(tc.closes, []float64{1, 1}),
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.RiskScore)
		})
	}
}

func TestClassifyRisk_Boundaries(t *testing.T) {
	assert.Equal(t, models.RiskLow, classifyRisk(0.05))
	assert.Equal(t, models.RiskMedium, classifyRisk(0.0500001))
	assert.Equal(t, models.RiskMedium, classifyRisk(0.15))
	assert.Equal(t, models.RiskHigh, classifyRisk(0.1500001))
	assert.Equal(t, models.RiskLow, classifyRisk(-0.3))
}

func TestRiskAnalyzer_VolumeAnomalies(t *testing.T) {
	volumes := []float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 1000}
	closes := make([]float64, len(volumes))
	for i := range closes {
		closes[i] = 10
	}
	series := ohlcv(closes, volumes)
	series[9].Time = "2024-05-01T10:09:00Z"

	res, err := NewRiskAnalyzer().Analyze(models.RiskRequest{Series: series})
	require.NoError(t, err)

	require.Len(t, res.Anomalies, 1)
	assert.Equal(t, "2024-05-01T10:09:00Z", res.Anomalies[0].Time)
	assert.Equal(t, 1000.0, res.Anomalies[0].Volume)
	assert.InDelta(t, 3.0, res.Anomalies[0].ZScore, 1e-12)
}

func TestRiskAnalyzer_NegativeZScoreKeepsSignAndOrder(t *testing.T) {
	volumes := []float64{1000, 1000, 10, 1000, 1000, 1000, 1000, 1000, 1000, 1000}
	closes := make([]float64, len(volumes))
	for i := range closes {
		closes[i] = 10
	}

	res, err := NewRiskAnalyzer().Analyze(models.RiskRequest{Series: ohlcv(closes, volumes)})
	require.NoError(t, err)

	require.Len(t, res.Anomalies, 1)
	assert.Equal(t, 2, res.Anomalies[0].Time)
	assert.InDelta(t, -3.0, res.Anomalies[0].ZScore, 1e-12)
}

func TestRiskAnalyzer_EqualVolumesNeverAnomalous(t *testing.T) {
	res, err := NewRiskAnalyzer().Analyze(models.RiskRequest{
		Series: ohlcv([]float64{1, 50, 2, 90, 3}, []float64{7, 7, 7, 7, 7}),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Anomalies)
}

func TestRiskAnalyzer_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		series models.Series
	}{
		{name: "empty series", series: nil},
		{name: "nan close", series: ohlcv([]float64{1, math.NaN()}, []float64{1, 1})},
		{name: "infinite volume", series: ohlcv([]float64{1, 2}, []float64{1, math.Inf(1)})},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRiskAnalyzer().Analyze(models.RiskRequest{Series: tc.series})
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}

func TestRiskAnalyzer_Overflow(t *testing.T) {
	testCases := []struct {
		name   string
		series models.Series
		field  string
	}{
		{name: "close mean", series: ohlcv([]float64{1e308, 1.5e308}, []float64{1, 1}), field: "volatility"},
		{name: "volume mean", series: ohlcv([]float64{1, 2}, []float64{1e308, 1.5e308}), field: "volume"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRiskAnalyzer().Analyze(models.RiskRequest{Series: tc.series})
			require.ErrorIs(t, err, models.ErrInvalidInput)

			var inErr *models.InvalidInputError
			require.ErrorAs(t, err, &inErr)
			assert.Equal(t, tc.field, inErr.Field)
			assert.Contains(t, err.Error(), "overflows float64")
		})
	}
}
