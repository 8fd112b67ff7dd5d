package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupGormBackend(t *testing.T) *GormBackend {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())
	})

	backend, err := NewGormBackend(db)
	require.NoError(t, err)
	return backend
}

func TestGormBackendLoadEmpty(t *testing.T) {
	backend := setupGormBackend(t)

	_, err := backend.Load(context.Background())
	require.ErrorIs(t, err, ErrNoSnapshot)
}

func TestGormBackendSaveOverwritesSingleRow(t *testing.T) {
	backend := setupGormBackend(t)
	ctx := context.Background()

	require.NoError(t, backend.Save(ctx, []byte(`{"v":1}`)))
	require.NoError(t, backend.Save(ctx, []byte(`{"v":2}`)))

	data, err := backend.Load(ctx)
	require.NoError(t, err)
	require.JSONEq(t, `{"v":2}`, string(data))

	var count int64
	require.NoError(t, backend.db.Model(&SnapshotRecord{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestGormBackendBacksStore(t *testing.T) {
	backend := setupGormBackend(t)
	ctx := context.Background()

	st, err := Open(ctx, backend, testLogger())
	require.NoError(t, err)
	require.Len(t, st.Subjects(), 3)

	_, err = st.AddSubject(ctx, "GEO-101", "Geografia I")
	require.NoError(t, err)

	reloaded, err := Open(ctx, backend, testLogger())
	require.NoError(t, err)
	require.Len(t, reloaded.Subjects(), 4)
}
