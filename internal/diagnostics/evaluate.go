package diagnostics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/fortuna/aurum/internal/config"
	"github.com/fortuna/aurum/internal/dataset"
	"github.com/fortuna/aurum/internal/model"
)

// Evaluate runs k-fold cross-validation of the fitting procedure over the
// training table and returns MAE, RMSE and R² measured on held-out folds
// only. Scoring the same rows a model was fitted on would inflate every
// metric, so that is never done here.
//
// Metrics describe the procedure, not one frozen model: they must be
// recomputed whenever the training set changes, even when a persisted model
// is reused for prediction.
func Evaluate(cfg config.Model, rows []dataset.ModelingRow, folds int) (model.CVMetrics, error) {
	if folds < 2 {
		return model.CVMetrics{}, fmt.Errorf("need at least 2 folds, got %d", folds)
	}
	if len(rows) < folds {
		return model.CVMetrics{}, fmt.Errorf("%d rows for %d folds: %w",
			len(rows), folds, model.ErrInsufficientTrainingData)
	}

	actual := make([]float64, 0, len(rows))
	predicted := make([]float64, 0, len(rows))

	for fold := 0; fold < folds; fold++ {
		lo, hi := foldBounds(len(rows), folds, fold)

		train := make([]dataset.ModelingRow, 0, len(rows)-(hi-lo))
		train = append(train, rows[:lo]...)
		train = append(train, rows[hi:]...)

		m, err := model.Train(cfg, train)
		if err != nil {
			return model.CVMetrics{}, fmt.Errorf("fitting fold %d: %w", fold, err)
		}

		for _, row := range rows[lo:hi] {
			actual = append(actual, row.Production)
			predicted = append(predicted, m.Predict(row.Salary))
		}
	}

	return Accuracy(actual, predicted), nil
}

// foldBounds splits n rows into contiguous folds, spreading the remainder
// over the leading folds.
func foldBounds(n, folds, fold int) (int, int) {
	size := n / folds
	extra := n % folds

	lo := fold*size + min(fold, extra)
	hi := lo + size
	if fold < extra {
		hi++
	}
	return lo, hi
}

// Accuracy computes MAE, RMSE and R² of predictions against actuals.
func Accuracy(actual, predicted []float64) model.CVMetrics {
	n := float64(len(actual))
	if n == 0 {
		return model.CVMetrics{}
	}

	var absSum, sqSum float64
	for i := range actual {
		diff := actual[i] - predicted[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff
	}

	return model.CVMetrics{
		MAE:  absSum / n,
		RMSE: math.Sqrt(sqSum / n),
		R2:   stat.RSquaredFrom(predicted, actual, nil),
	}
}
