package jsonfile

import (
	"context"
	"sync"

	"github.com/colonyops/unitdesk/internal/core/notify"
)

// HistoryFile is the root JSON structure of the notification history.
type HistoryFile struct {
	Notifications []notify.Record `json:"notifications"`
}

// NotifyStore implements notify.Store using a JSON file.
type NotifyStore struct {
	path       string
	maxEntries int
	mu         sync.RWMutex
}

var _ notify.Store = (*NotifyStore)(nil)

// NewNotifyStore creates a notification history store at the given path.
// When maxEntries is positive only the newest maxEntries are kept.
func NewNotifyStore(path string, maxEntries int) *NotifyStore {
	return &NotifyStore{path: path, maxEntries: maxEntries}
}

// Save prepends a record, pruning old ones to stay within maxEntries.
func (s *NotifyStore) Save(ctx context.Context, r notify.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	file.Notifications = append([]notify.Record{r}, file.Notifications...)
	if s.maxEntries > 0 && len(file.Notifications) > s.maxEntries {
		file.Notifications = file.Notifications[:s.maxEntries]
	}

	return writeFile(s.path, file)
}

// List returns all records, newest first.
func (s *NotifyStore) List(ctx context.Context) ([]notify.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}
	return file.Notifications, nil
}

// Clear removes all records.
func (s *NotifyStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeFile(s.path, HistoryFile{Notifications: []notify.Record{}})
}

// Count returns the number of stored records.
func (s *NotifyStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return 0, err
	}
	return int64(len(file.Notifications)), nil
}

func (s *NotifyStore) load() (HistoryFile, error) {
	var file HistoryFile
	err := readFile(s.path, &file)
	return file, err
}
