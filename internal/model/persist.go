package model

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes a trained model to disk. A persisted model is for prediction
// reuse only; its stored CV field is stale the moment the training set
// changes, so consumers report freshly computed metrics instead.
func Save(path string, m *TrainedModel) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating model dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating model file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(m); err != nil {
		return fmt.Errorf("encoding model: %w", err)
	}

	return nil
}

// Load reads a trained model from disk.
func Load(path string) (*TrainedModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model file: %w", err)
	}
	defer f.Close()

	var m TrainedModel
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}

	return &m, nil
}
