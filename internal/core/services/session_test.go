package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-labs/forgeview-cli/internal/core/domain"
)

func TestSessionService_List(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.AppendMessage(context.Background(), "s1", domain.RoleUser, "a"))
	require.NoError(t, store.AppendMessage(context.Background(), "s2", domain.RoleUser, "b"))
	svc := NewSessionService(newFakeCache(), store)

	sessions, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestSessionService_Delete(t *testing.T) {
	cache := newFakeCache()
	store := newFakeStore()
	require.NoError(t, store.AppendMessage(context.Background(), "s1", domain.RoleUser, "a"))
	require.NoError(t, cache.Append("s1", domain.Message{Role: domain.RoleUser, Content: "a"}))
	svc := NewSessionService(cache, store)

	require.NoError(t, svc.Delete(context.Background(), "s1"))

	sessions, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)

	snap, err := cache.Snapshot("s1")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSessionService_Delete_EmptyID(t *testing.T) {
	svc := NewSessionService(newFakeCache(), newFakeStore())
	assert.ErrorIs(t, svc.Delete(context.Background(), ""), domain.ErrInvalidSession)
}
