package storage

import (
	"ctf/internal/config"
	"ctf/internal/domain"
)

// Storage persists and loads the summary of the last classify run (read by
// list and view).
type Storage interface {
	Save(summary *domain.RunSummary) error
	Load() (*domain.RunSummary, error)
}

// HistoryStore records classify runs so they can be compared over time.
type HistoryStore interface {
	Record(summary *domain.RunSummary) error
	Recent(limit int) ([]domain.HistoryRun, error)
	Close() error
}

// JSONStorage stores the summary in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
