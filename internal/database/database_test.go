package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/blog/internal/config"
	"github.com/fkhayef/blog/internal/docstore"
	"github.com/fkhayef/blog/internal/docstore/memstore"
)

func TestOpenMemory(t *testing.T) {
	store, err := Open(context.Background(), &config.Config{DatabaseURL: "memory://", DatabaseName: "blog"})
	require.NoError(t, err)
	assert.IsType(t, &memstore.Store{}, store)
	assert.Equal(t, "blog", store.Name())
}

func TestOpenNotConfigured(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestOpenUnsupportedScheme(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{DatabaseURL: "redis://localhost"})
	assert.ErrorContains(t, err, `"redis"`)
}

func TestOpenOrOfflineDegrades(t *testing.T) {
	store := OpenOrOffline(context.Background(), &config.Config{})
	offline, ok := store.(*docstore.Offline)
	require.True(t, ok)
	assert.ErrorIs(t, offline.Reason, ErrNotConfigured)
	assert.ErrorIs(t, store.Ping(context.Background()), docstore.ErrUnavailable)
}

func TestScheme(t *testing.T) {
	assert.Equal(t, "mongodb+srv", scheme("mongodb+srv://cluster0.example.net"))
	assert.Equal(t, "postgres", scheme("POSTGRES://u@h/db"))
	assert.Equal(t, "", scheme("localhost:27017"))
}
