package database

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"guesthouse/internal/domain"
)

func TestConnectAndMigrate_SQLite(t *testing.T) {
	dsn := fmt.Sprintf("file:database_test_%s?mode=memory&cache=shared", t.Name())
	db, err := Connect(dsn, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}
	assert.True(t, db.Migrator().HasIndex(&domain.Room{}, "idx_room_house_number"))
}
