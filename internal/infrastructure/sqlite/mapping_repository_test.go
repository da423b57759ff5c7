package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sorenhq/namevault/internal/pool"
	"github.com/sorenhq/namevault/internal/registry/domain"
)

func newTestRepository(t *testing.T) *MappingRepository {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "registry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	p := pool.New(pool.Config{Workers: 2})
	t.Cleanup(p.Close)

	return NewMappingRepository(db, p)
}

func TestMappingRepository_CreateOrGet_MintsFreshIdentifier(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	uid, err := repo.CreateOrGet(ctx, "movies", true)
	require.NoError(t, err)
	require.NotEqual(t, uuid.UUID{}, uid, "minted identifier should not be zero")

	got, found, err := repo.Get(ctx, "movies")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uid, got)
}

func TestMappingRepository_CreateOrGet_RejectsExisting(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.CreateOrGet(ctx, "movies", true)
	require.NoError(t, err)

	_, err = repo.CreateOrGet(ctx, "movies", true)
	var exists *domain.AlreadyExistsError
	require.ErrorAs(t, err, &exists)
	require.Equal(t, "movies", exists.Name)

	// The rejected call must not have mutated the entry.
	got, found, err := repo.Get(ctx, "movies")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, first, got)
}

func TestMappingRepository_CreateOrGet_ReturnsExistingWhenNotStrict(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.CreateOrGet(ctx, "movies", false)
	require.NoError(t, err)

	second, err := repo.CreateOrGet(ctx, "movies", false)
	require.NoError(t, err)
	require.Equal(t, first, second, "non-strict create should return the existing identifier")
}

func TestMappingRepository_Get_AbsentIsNotAnError(t *testing.T) {
	repo := newTestRepository(t)

	_, found, err := repo.Get(context.Background(), "missing")
	require.NoError(t, err)
	require.False(t, found)
}

func TestMappingRepository_Delete_ReturnsRemovedIdentifier(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	uid, err := repo.CreateOrGet(ctx, "movies", true)
	require.NoError(t, err)

	removed, found, err := repo.Delete(ctx, "movies")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uid, removed)

	_, found, err = repo.Get(ctx, "movies")
	require.NoError(t, err)
	require.False(t, found, "deleted name should no longer resolve")
}

func TestMappingRepository_Delete_AbsentIsNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, found, err := repo.Delete(context.Background(), "missing")
	require.NoError(t, err)
	require.False(t, found)
}

func TestMappingRepository_List_ReturnsAllEntries(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	want := map[string]uuid.UUID{}
	for _, name := range []string{"a", "b", "c"} {
		uid, err := repo.CreateOrGet(ctx, name, true)
		require.NoError(t, err)
		want[name] = uid
	}

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	got := map[string]uuid.UUID{}
	for _, e := range entries {
		got[e.Name] = e.UID
	}
	require.Equal(t, want, got)
}

func TestMappingRepository_List_EmptyStoreIsEmptySlice(t *testing.T) {
	repo := newTestRepository(t)

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestMappingRepository_Insert_ExactValueRoundTrips(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	uid := uuid.MustParse("01234567-89ab-4def-8123-456789abcdef")
	require.NoError(t, repo.Insert(ctx, "movies", uid))

	got, found, err := repo.Get(ctx, "movies")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uid, got)
}

func TestMappingRepository_Insert_LastWriteWins(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := uuid.New()
	second := uuid.New()
	require.NoError(t, repo.Insert(ctx, "movies", first))
	require.NoError(t, repo.Insert(ctx, "movies", second))

	got, found, err := repo.Get(ctx, "movies")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, second, got)
}

func TestMappingRepository_CorruptValueSurfacesOnGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.db.conn.Exec(
		"INSERT INTO mappings (name, uid) VALUES (?, ?)",
		"broken", []byte{0x01, 0x02, 0x03},
	)
	require.NoError(t, err)

	_, _, err = repo.Get(ctx, "broken")
	var corrupt *domain.CorruptEntryError
	require.ErrorAs(t, err, &corrupt)
	require.Equal(t, "broken", corrupt.Name)
	require.Equal(t, 3, corrupt.Len)
}

func TestMappingRepository_CorruptValueSurfacesOnList(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, "fine", uuid.New()))
	_, err := repo.db.conn.Exec(
		"INSERT INTO mappings (name, uid) VALUES (?, ?)",
		"broken", []byte("short"),
	)
	require.NoError(t, err)

	_, err = repo.List(ctx)
	var corrupt *domain.CorruptEntryError
	require.ErrorAs(t, err, &corrupt)
	require.Equal(t, "broken", corrupt.Name)
}
