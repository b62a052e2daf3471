package main

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"guesthouse/internal/database"
	"guesthouse/internal/domain"
	"guesthouse/internal/repository"
)

func TestSeed_Fixture(t *testing.T) {
	fx, err := loadFixture("fixture.yaml")
	require.NoError(t, err)

	db, err := database.Connect("file:seed_test?mode=memory&cache=shared", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	store := repository.NewStore(db)
	ctx := context.Background()

	houseID, err := seed(ctx, store, fx, zap.NewNop())
	require.NoError(t, err)

	h, err := store.Houses.GetByID(ctx, houseID)
	require.NoError(t, err)
	assert.Equal(t, "owner@seaside", h.Owner)

	rooms, err := store.Rooms.ListByHouse(ctx, houseID)
	require.NoError(t, err)
	assert.Len(t, rooms, 3)

	// a second run hits the single-house rule
	_, err = seed(ctx, store, fx, zap.NewNop())
	assert.ErrorIs(t, err, domain.ErrAlreadyInitialized)
}

func TestLoadFixture_RequiresOwner(t *testing.T) {
	path := t.TempDir() + "/fx.yaml"
	require.NoError(t, writeFile(path, "house:\n  name: x\n"))

	_, err := loadFixture(path)
	assert.Error(t, err)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
