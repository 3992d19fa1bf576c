package store

import (
	"time"

	"github.com/google/uuid"
)

// Run is one archived pipeline run: which seasons trained the model, how
// many rookies were scored and the cross-validated fit quality.
type Run struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	Season              string    `json:"season" db:"season"`
	FirstTrainingSeason string    `json:"first_training_season" db:"first_training_season"`
	LastTrainingSeason  string    `json:"last_training_season" db:"last_training_season"`
	TrainingRows        int       `json:"training_rows" db:"training_rows"`
	ScoredRookies       int       `json:"scored_rookies" db:"scored_rookies"`
	CVMAE               float64   `json:"cv_mae" db:"cv_mae"`
	CVRMSE              float64   `json:"cv_rmse" db:"cv_rmse"`
	CVR2                float64   `json:"cv_r2" db:"cv_r2"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}
