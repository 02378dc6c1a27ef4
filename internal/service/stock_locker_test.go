package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStockLocker(t *testing.T) {
	locker := NewMemoryStockLocker()
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, []string{"B2", "B1", "B1"})
	require.NoError(t, err)

	blocked, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(blocked, []string{"B1"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := locker.Lock(ctx, []string{"B3"})
	require.NoError(t, err, "disjoint books do not contend")
	other()

	unlock()
	again, err := locker.Lock(ctx, []string{"B1", "B2"})
	require.NoError(t, err)
	again()
}
