package zone

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockAwarder struct {
	mock.Mock
}

func (m *MockAwarder) AwardPoints(ctx context.Context, id int64, delta int64, reason string) error {
	args := m.Called(ctx, id, delta, reason)
	return args.Error(0)
}
