package export

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/fortuna/aurum/internal/residuals"
)

// Summary aggregates the scored season for the console report.
type Summary struct {
	TotalRookies   int
	SurplusRookies int
	DeficitRookies int
	MaxSurplus     float64
	MaxDeficit     float64
	MeanResidual   float64
	MedianResidual float64
}

// Summarize computes season-level residual statistics.
func Summarize(records []residuals.ResidualRecord) Summary {
	s := Summary{TotalRookies: len(records)}
	if len(records) == 0 {
		return s
	}

	values := make([]float64, len(records))
	for i, rec := range records {
		values[i] = rec.Residual
		if rec.Residual > 0 {
			s.SurplusRookies++
		} else if rec.Residual < 0 {
			s.DeficitRookies++
		}
	}

	sort.Float64s(values)
	s.MaxDeficit = values[0]
	s.MaxSurplus = values[len(values)-1]
	s.MeanResidual = stat.Mean(values, nil)
	s.MedianResidual = stat.Quantile(0.5, stat.Empirical, values, nil)

	return s
}
