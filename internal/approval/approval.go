package approval

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store keeps the allow-list of Telegram user IDs permitted to issue
// commands. The admin is always approved. The list is persisted as a JSON
// array so approvals survive restarts.
type Store struct {
	mu      sync.Mutex
	path    string
	adminID int64
}

func NewStore(path string, adminID int64) *Store {
	return &Store{path: path, adminID: adminID}
}

// IsAdmin reports whether the user is the configured admin.
func (s *Store) IsAdmin(userID int64) bool {
	return userID == s.adminID
}

// IsApproved reports whether the user may issue commands.
func (s *Store) IsApproved(userID int64) bool {
	if userID == s.adminID {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ids, err := s.load()
	if err != nil {
		return false
	}
	for _, id := range ids {
		if id == userID {
			return true
		}
	}
	return false
}

// Add approves a user. Returns false when the user was already approved.
func (s *Store) Add(userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load()
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == userID {
			return false, nil
		}
	}
	ids = append(ids, userID)
	if err := s.save(ids); err != nil {
		return false, err
	}
	return true, nil
}

// load reads the allow-list; a missing file is an empty list.
func (s *Store) load() ([]int64, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read approval file: %w", err)
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("parse approval file: %w", err)
	}
	return ids, nil
}

func (s *Store) save(ids []int64) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create approval dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
