package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "alice", DisplayName(1, "alice"))
	assert.Equal(t, "Player 42", DisplayName(42, ""))
}
