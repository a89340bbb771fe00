// Package flatfile keeps one TOML record per player in a directory. It suits
// small servers that want human-editable balances and no database.
package flatfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/store"
)

const recordExt = ".toml"

// Store implements store.Accounts on a directory of TOML files.
type Store struct {
	dir string
	mu  sync.Mutex
}

var _ store.Accounts = (*Store)(nil)

// Open creates the directory if needed
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("flatfile directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create flatfile directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(id int64) string {
	return filepath.Join(s.dir, strconv.FormatInt(id, 10)+recordExt)
}

// load reads a record; missing files yield a fresh account
func (s *Store) load(id int64) (domain.PlayerAccount, error) {
	acct := domain.PlayerAccount{ID: id}
	if _, err := toml.DecodeFile(s.path(id), &acct); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.PlayerAccount{ID: id}, nil
		}
		return acct, fmt.Errorf("read account %d: %w", id, err)
	}
	acct.ID = id
	return acct, nil
}

// save writes through a temp file so a crash never leaves a torn record
func (s *Store) save(acct domain.PlayerAccount) error {
	tmp, err := os.CreateTemp(s.dir, ".acct-*")
	if err != nil {
		return fmt.Errorf("write account %d: %w", acct.ID, err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(acct); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode account %d: %w", acct.ID, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write account %d: %w", acct.ID, err)
	}
	if err := os.Rename(tmp.Name(), s.path(acct.ID)); err != nil {
		return fmt.Errorf("write account %d: %w", acct.ID, err)
	}
	return nil
}

func (s *Store) mutate(id int64, fn func(*domain.PlayerAccount) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, err := s.load(id)
	if err != nil {
		return err
	}
	if err := fn(&acct); err != nil {
		return err
	}
	return s.save(acct)
}

// GetPoints implements store.Accounts
func (s *Store) GetPoints(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, err := s.load(id)
	return acct.Points, err
}

// UpdatePoints implements store.Accounts
func (s *Store) UpdatePoints(_ context.Context, id int64, delta int64) error {
	return s.mutate(id, func(a *domain.PlayerAccount) error {
		a.Points += delta
		return nil
	})
}

// DebitPoints implements store.Accounts
func (s *Store) DebitPoints(_ context.Context, id int64, amount int64) error {
	return s.mutate(id, func(a *domain.PlayerAccount) error {
		if a.Points < amount {
			return domain.ErrInsufficientPoints
		}
		a.Points -= amount
		return nil
	})
}

// LinkExternalID implements store.Accounts
func (s *Store) LinkExternalID(_ context.Context, id int64, externalID string) error {
	return s.mutate(id, func(a *domain.PlayerAccount) error {
		a.ExternalID = externalID
		return nil
	})
}

// ExternalID implements store.Accounts
func (s *Store) ExternalID(_ context.Context, id int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, err := s.load(id)
	return acct.ExternalID, err
}

// RegisterPlayer implements store.Accounts
func (s *Store) RegisterPlayer(_ context.Context, id int64, name string) error {
	return s.mutate(id, func(a *domain.PlayerAccount) error {
		a.Name = name
		return nil
	})
}

// GetTopN implements store.Accounts by scanning every record
func (s *Store) GetTopN(_ context.Context, n int) ([]domain.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	var accts []domain.PlayerAccount
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, recordExt) {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSuffix(name, recordExt), 10, 64)
		if err != nil {
			continue
		}
		acct, err := s.load(id)
		if err != nil {
			return nil, err
		}
		accts = append(accts, acct)
	}

	sort.Slice(accts, func(i, j int) bool {
		if accts[i].Points != accts[j].Points {
			return accts[i].Points > accts[j].Points
		}
		return accts[i].ID < accts[j].ID
	})
	if n >= 0 && len(accts) > n {
		accts = accts[:n]
	}

	out := make([]domain.LeaderboardEntry, len(accts))
	for i, a := range accts {
		out[i] = domain.LeaderboardEntry{Name: store.DisplayName(a.ID, a.Name), Points: a.Points}
	}
	return out, nil
}

// Close implements store.Accounts
func (s *Store) Close() error { return nil }
