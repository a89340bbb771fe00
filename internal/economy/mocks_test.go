package economy

import (
	"context"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/store"
)

// MockAccounts implements store.Accounts for testing
type MockAccounts struct {
	mock.Mock
}

func (m *MockAccounts) GetPoints(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccounts) UpdatePoints(ctx context.Context, id int64, delta int64) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockAccounts) DebitPoints(ctx context.Context, id int64, amount int64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockAccounts) LinkExternalID(ctx context.Context, id int64, externalID string) error {
	args := m.Called(ctx, id, externalID)
	return args.Error(0)
}

func (m *MockAccounts) ExternalID(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockAccounts) RegisterPlayer(ctx context.Context, id int64, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockAccounts) GetTopN(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func (m *MockAccounts) Close() error {
	return m.Called().Error(0)
}

// memAccounts is a thread-safe in-memory store.Accounts
type memAccounts struct {
	mu     sync.Mutex
	points map[int64]int64
	names  map[int64]string
}

var _ store.Accounts = (*memAccounts)(nil)

func newMemAccounts(balances map[int64]int64) *memAccounts {
	m := &memAccounts{points: make(map[int64]int64), names: make(map[int64]string)}
	for id, pts := range balances {
		m.points[id] = pts
	}
	return m
}

func (m *memAccounts) GetPoints(_ context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.points[id], nil
}

func (m *memAccounts) UpdatePoints(_ context.Context, id int64, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points[id] += delta
	return nil
}

func (m *memAccounts) DebitPoints(_ context.Context, id int64, amount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.points[id] < amount {
		return domain.ErrInsufficientPoints
	}
	m.points[id] -= amount
	return nil
}

func (m *memAccounts) LinkExternalID(context.Context, int64, string) error { return nil }

func (m *memAccounts) ExternalID(context.Context, int64) (string, error) { return "", nil }

func (m *memAccounts) RegisterPlayer(_ context.Context, id int64, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names[id] = name
	return nil
}

func (m *memAccounts) GetTopN(_ context.Context, n int) ([]domain.LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0, len(m.points))
	for id := range m.points {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if m.points[ids[i]] != m.points[ids[j]] {
			return m.points[ids[i]] > m.points[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	out := make([]domain.LeaderboardEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.LeaderboardEntry{Name: store.DisplayName(id, m.names[id]), Points: m.points[id]})
	}
	return out, nil
}

func (m *memAccounts) Close() error { return nil }
