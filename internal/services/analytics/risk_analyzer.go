package analytics

import (
	"math"

	"MarketMCP/internal/domain/models"
	domsvc "MarketMCP/internal/domain/service"
)

const (
	highVolatility   = 0.15
	mediumVolatility = 0.05
	anomalyZ         = 2.0
)

// RiskAnalyzer scores the coefficient of variation of closes and flags
// volume outliers by z-score.
type RiskAnalyzer struct{}

func NewRiskAnalyzer() *RiskAnalyzer { return &RiskAnalyzer{} }

func (a *RiskAnalyzer) Analyze(req models.RiskRequest) (models.RiskResult, error) {
	if err := checkSeries(req.Series, true); err != nil {
		return models.RiskResult{}, err
	}

	volatility, err := coefficientOfVariation(req.Series.Closes())
	if err != nil {
		return models.RiskResult{}, err
	}
	anomalies, err := volumeAnomalies(req.Series)
	if err != nil {
		return models.RiskResult{}, err
	}
	return models.RiskResult{
		Symbol:     req.Symbol,
		Volatility: volatility,
		RiskScore:  classifyRisk(volatility),
		Anomalies:  anomalies,
	}, nil
}

// coefficientOfVariation is 0 when the mean is exactly 0.
func coefficientOfVariation(closes []float64) (float64, error) {
	mean, std := meanStd(closes)
	if err := checkOverflow("volatility", mean, std); err != nil {
		return 0, err
	}
	if mean == 0 {
		return 0, nil
	}
	cv := std / mean
	if err := checkOverflow("volatility", cv); err != nil {
		return 0, err
	}
	return cv, nil
}

func classifyRisk(volatility float64) models.RiskTier {
	switch {
	case volatility > highVolatility:
		return models.RiskHigh
	case volatility > mediumVolatility:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// volumeAnomalies keeps series order and the signed z-score.
func volumeAnomalies(s models.Series) ([]models.VolumeAnomaly, error) {
	out := []models.VolumeAnomaly{}
	mean, std := meanStd(s.Volumes())
	if err := checkOverflow("volume", mean, std); err != nil {
		return nil, err
	}
	if std == 0 {
		return out, nil
	}
	for _, p := range s {
		z := zScore(p.Volume, mean, std)
		if err := checkOverflow("volume", z); err != nil {
			return nil, err
		}
		if math.Abs(z) > anomalyZ {
			out = append(out, models.VolumeAnomaly{Time: p.Time, Volume: p.Volume, ZScore: z})
		}
	}
	return out, nil
}

var _ domsvc.RiskAnalyzer = (*RiskAnalyzer)(nil)
