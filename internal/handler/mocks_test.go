package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/BrandishEvents_Go/internal/domain"
	"github.com/osse101/BrandishEvents_Go/internal/economy"
	"github.com/osse101/BrandishEvents_Go/internal/lifecycle"
)

type MockEvents struct {
	mock.Mock
}

func (m *MockEvents) Join(ctx context.Context, name string, id int64) (string, error) {
	args := m.Called(ctx, name, id)
	return args.String(0), args.Error(1)
}

func (m *MockEvents) Leave(ctx context.Context, name string, id int64) error {
	return m.Called(ctx, name, id).Error(0)
}

func (m *MockEvents) RecordKill(ctx context.Context, name string, killer, victim int64) error {
	return m.Called(ctx, name, killer, victim).Error(0)
}

func (m *MockEvents) ForceStart(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockEvents) ForceStop(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockEvents) List() []lifecycle.Status {
	return m.Called().Get(0).([]lifecycle.Status)
}

func (m *MockEvents) Reload(ctx context.Context, defs []domain.EventDefinition) lifecycle.ReloadResult {
	return m.Called(ctx, defs).Get(0).(lifecycle.ReloadResult)
}

type MockEconomy struct {
	mock.Mock
}

func (m *MockEconomy) Balance(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEconomy) AwardPoints(ctx context.Context, id int64, delta int64, reason string) error {
	return m.Called(ctx, id, delta, reason).Error(0)
}

func (m *MockEconomy) Leaderboard(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func (m *MockEconomy) InitiateTransfer(ctx context.Context, sender int64, amount int64) (string, error) {
	args := m.Called(ctx, sender, amount)
	return args.String(0), args.Error(1)
}

func (m *MockEconomy) CompleteTransfer(ctx context.Context, code string, receiver int64) (domain.PointsTransfer, error) {
	args := m.Called(ctx, code, receiver)
	return args.Get(0).(domain.PointsTransfer), args.Error(1)
}

func (m *MockEconomy) PurchaseReward(ctx context.Context, id int64, name string) (*economy.PurchaseResult, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.PurchaseResult), args.Error(1)
}

func (m *MockEconomy) SetCatalog(catalog domain.RewardCatalog) {
	m.Called(catalog)
}

type MockLinker struct {
	mock.Mock
}

func (m *MockLinker) RegisterPlayer(ctx context.Context, id int64, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *MockLinker) LinkExternalID(ctx context.Context, id int64, externalID string) error {
	return m.Called(ctx, id, externalID).Error(0)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
