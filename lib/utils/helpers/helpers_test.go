package helpers

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	require.False(t, IsContextDone(ctx))
	cancel()
	require.True(t, IsContextDone(ctx))
	require.True(t, IsContextDone(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	require.True(t, IsUniqueViolation(errors.Wrap(gorm.ErrDuplicatedKey, "create")))
	require.True(t, IsUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)`)))
	require.False(t, IsUniqueViolation(errors.New("timeout")))
	require.False(t, IsUniqueViolation(nil))
}
