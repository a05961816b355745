package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dooferio/authkit/pkg/auth"
	"github.com/dooferio/authkit/pkg/store"
)

func newLinkerEnv(t *testing.T) (*auth.Linker, *store.Store, *store.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	st := store.New(db)
	require.NoError(t, st.AutoMigrate())

	user := &store.User{UserUUID: uuid.New(), Email: "a@b.com", FirstName: "A", LastName: "B"}
	require.NoError(t, st.CreateUser(context.Background(), user))

	linker, err := auth.NewLinker("test-pepper")
	require.NoError(t, err)
	return linker, st, user
}

func TestNewLinker(t *testing.T) {
	t.Parallel()

	_, err := auth.NewLinker("")
	require.Error(t, err)
}

func TestLinker_CreateAndFind(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	linker, st, user := newLinkerEnv(t)

	_, err := linker.Find(ctx, st, user.UserUUID, store.ProviderGoogle)
	require.ErrorIs(t, err, store.ErrNotFound)

	created, err := linker.Create(ctx, st, user.UserUUID, store.ProviderGoogle, "google-sub-1")
	require.NoError(t, err)
	// Hashed at rest, never the raw subject id.
	assert.NotEqual(t, "google-sub-1", created.Acc)
	assert.NotContains(t, created.Acc, "google-sub-1")

	found, err := linker.Find(ctx, st, user.UserUUID, store.ProviderGoogle)
	require.NoError(t, err)
	assert.Equal(t, created.Acc, found.Acc)
}

func TestLinker_Matches(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	linker, st, user := newLinkerEnv(t)

	created, err := linker.Create(ctx, st, user.UserUUID, store.ProviderMicrosoft, "ms-sub-1")
	require.NoError(t, err)

	assert.True(t, linker.Matches(created, "ms-sub-1"))
	assert.False(t, linker.Matches(created, "ms-sub-2"))

	// A different pepper produces a different digest for the same subject.
	other, err := auth.NewLinker("another-pepper")
	require.NoError(t, err)
	assert.False(t, other.Matches(created, "ms-sub-1"))
}
