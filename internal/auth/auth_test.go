package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-day-planner/internal/auth"
)

func TestConnectFlipsFlag(t *testing.T) {
	s := auth.New(10 * time.Millisecond)
	require.False(t, s.Authenticated())

	require.NoError(t, s.Connect(context.Background()))
	require.True(t, s.Authenticated())

	require.NoError(t, s.Connect(context.Background()))
	require.True(t, s.Authenticated())
}

func TestConnectCancelled(t *testing.T) {
	s := auth.New(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	require.ErrorIs(t, s.Connect(ctx), context.DeadlineExceeded)
	require.False(t, s.Authenticated())
}
