package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/noah-isme/campus-pulse-api/internal/models"
)

// fallbackBlobKey is the fixed key the serialized record list lives under
// inside the blob file.
const fallbackBlobKey = "student_feedback_data"

// FallbackStore is the process-local tier used when the primary store is
// unreachable. The whole dataset is one JSON blob at a fixed path, overwritten
// wholesale on every write. It is never merged with the primary dataset.
type FallbackStore struct {
	path   string
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewFallbackStore builds a fallback store persisting to path.
func NewFallbackStore(path string, logger zerolog.Logger) *FallbackStore {
	return &FallbackStore{
		path:   path,
		logger: logger.With().Str("component", "fallback_store").Logger(),
	}
}

type fallbackBlob struct {
	Records []models.Feedback `json:"student_feedback_data"`
}

// Load returns all records held by the fallback tier, newest first. A missing
// blob file means an empty dataset, not an error.
func (s *FallbackStore) Load() ([]models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked()
}

// Replace overwrites the whole dataset.
func (s *FallbackStore) Replace(records []models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeLocked(records)
}

// Append adds one record to the dataset.
func (s *FallbackStore) Append(record models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadLocked()
	if err != nil {
		return err
	}

	return s.writeLocked(append(records, record))
}

// Upsert replaces the record with the same id, or appends it when the
// fallback tier has never seen it.
func (s *FallbackStore) Upsert(record models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadLocked()
	if err != nil {
		return err
	}

	replaced := false
	for i := range records {
		if records[i].ID == record.ID {
			records[i] = record
			replaced = true
			break
		}
	}

	if !replaced {
		records = append(records, record)
	}

	return s.writeLocked(records)
}

// Update applies mutate to the record with the given id and persists the
// dataset. A mutate error aborts the write entirely.
func (s *FallbackStore) Update(id string, mutate func(*models.Feedback) error) (models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadLocked()
	if err != nil {
		return models.Feedback{}, err
	}

	for i := range records {
		if records[i].ID != id {
			continue
		}

		if err := mutate(&records[i]); err != nil {
			return models.Feedback{}, err
		}

		if err := s.writeLocked(records); err != nil {
			return models.Feedback{}, err
		}

		return records[i], nil
	}

	return models.Feedback{}, ErrNotFound
}

// Delete removes the record with the given id. Deleting an absent id returns
// ErrNotFound.
func (s *FallbackStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadLocked()
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, record := range records {
		if record.ID != id {
			kept = append(kept, record)
		}
	}

	if len(kept) == len(records) {
		return ErrNotFound
	}

	return s.writeLocked(kept)
}

func (s *FallbackStore) loadLocked() ([]models.Feedback, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read fallback blob: %w", err)
	}

	var blob fallbackBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("decode fallback blob: %w", err)
	}

	sort.SliceStable(blob.Records, func(i, j int) bool {
		return blob.Records[i].CreatedAt.After(blob.Records[j].CreatedAt)
	})

	return blob.Records, nil
}

func (s *FallbackStore) writeLocked(records []models.Feedback) error {
	if records == nil {
		records = []models.Feedback{}
	}

	data, err := json.Marshal(fallbackBlob{Records: records})
	if err != nil {
		return fmt.Errorf("encode fallback blob: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create fallback dir: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write fallback blob: %w", err)
	}

	s.logger.Debug().Int("records", len(records)).Str("key", fallbackBlobKey).Msg("fallback blob written")
	return nil
}
