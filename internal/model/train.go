package model

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/fortuna/aurum/internal/config"
	"github.com/fortuna/aurum/internal/dataset"
)

// ErrInsufficientTrainingData means the historical table is empty or too
// small for the configured cross-validation fold count. Fatal; raised
// before any fitting happens.
var ErrInsufficientTrainingData = errors.New("insufficient training data")

// CVMetrics are the fit-quality numbers reported for a fitting procedure.
type CVMetrics struct {
	MAE  float64
	RMSE float64
	R2   float64
}

// Scaler standardizes the salary feature, mirroring the original training
// pipeline. Exported fields for gob persistence.
type Scaler struct {
	Mean   float64
	StdDev float64
}

func (s Scaler) transform(x float64) float64 {
	if s.StdDev == 0 {
		return 0
	}
	return (x - s.Mean) / s.StdDev
}

// TrainedModel is a fitted salary → production regressor. Read-only after
// fit; predictions never mutate it. CV holds the cross-validation metrics
// computed alongside the fit; on load from disk they must be recomputed
// against the live training set before being reported.
type TrainedModel struct {
	Scaler       Scaler
	Base         float64
	Trees        []*TreeNode
	LearningRate float64
	CV           CVMetrics
}

// Predict returns expected production for a salary in current-season
// dollars.
func (m *TrainedModel) Predict(salary float64) float64 {
	x := m.Scaler.transform(salary)
	pred := m.Base
	for _, tree := range m.Trees {
		pred += m.LearningRate * tree.predict(x)
	}
	return pred
}

// Train fits a gradient-boosted ensemble of shallow regression trees on
// (salary) → (production). The relationship is non-monotonic and
// heteroskedastic, which is why this is not a linear fit. Deterministic for
// a fixed cfg.Seed.
func Train(cfg config.Model, rows []dataset.ModelingRow) (*TrainedModel, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no training rows: %w", ErrInsufficientTrainingData)
	}

	salaries := make([]float64, len(rows))
	targets := make([]float64, len(rows))
	for i, row := range rows {
		salaries[i] = row.Salary
		targets[i] = row.Production
	}

	scaler := Scaler{
		Mean:   stat.Mean(salaries, nil),
		StdDev: stat.StdDev(salaries, nil),
	}

	xs := make([]float64, len(salaries))
	for i, s := range salaries {
		xs[i] = scaler.transform(s)
	}

	base := stat.Mean(targets, nil)
	preds := make([]float64, len(targets))
	for i := range preds {
		preds[i] = base
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	residuals := make([]float64, len(targets))
	trees := make([]*TreeNode, 0, cfg.Estimators)

	for m := 0; m < cfg.Estimators; m++ {
		for i := range targets {
			residuals[i] = targets[i] - preds[i]
		}

		idx := sampleIndices(rng, len(xs), cfg.Subsample)
		tree := fitTree(xs, residuals, idx, cfg.MaxDepth)
		trees = append(trees, tree)

		for i, x := range xs {
			preds[i] += cfg.LearningRate * tree.predict(x)
		}
	}

	return &TrainedModel{
		Scaler:       scaler,
		Base:         base,
		Trees:        trees,
		LearningRate: cfg.LearningRate,
	}, nil
}
