package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/astronote/pkg/adapters/fs"
	"github.com/aretw0/astronote/pkg/core"
	"github.com/aretw0/astronote/pkg/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ core.NoteStore = (*fs.Repository)(nil)

func setupRepo(t *testing.T) (*fs.Repository, string) {
	t.Helper()

	root := filepath.Join(t.TempDir(), "store")
	repo := fs.NewRepository(fs.Config{Root: root})
	require.NoError(t, repo.Initialize(context.Background()))
	return repo, root
}

func TestCreateWritesMetadataFileMirroringIdentity(t *testing.T) {
	repo, root := setupRepo(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, core.New("a/b/c.md", now)))

	// Lazy directory creation under the root, one file per note.
	path := filepath.Join(root, "a", "b", "c.md.metadata")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "identity: a/b/c.md")
	assert.Contains(t, string(data), scheduler.TypeSuperMemo2)
	assert.NotContains(t, string(data), "id:", "relational id stays out of the file backend")
}

func TestCreateIsIdempotent(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	first := core.New("a.md", now)
	require.NoError(t, first.Review(5, now))
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, core.New("a.md", now.AddDate(0, 0, 7))))

	stored, err := repo.FindByIdentity(ctx, "a.md")
	require.NoError(t, err)
	assert.True(t, stored.NextDue.Equal(first.NextDue), "existing note must be left untouched")
}

func TestUpdateMissingIsNoOp(t *testing.T) {
	repo, root := setupRepo(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Update(ctx, core.New("ghost.md", now)))

	_, err := os.Stat(filepath.Join(root, "ghost.md.metadata"))
	assert.True(t, os.IsNotExist(err), "update of an untracked note must not create a file")
}

func TestFindByIdentityNotFound(t *testing.T) {
	repo, _ := setupRepo(t)
	_, err := repo.FindByIdentity(context.Background(), "missing.md")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestRoundTripPreservesSchedulerState(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	fresh := core.New("fresh.md", now)
	advanced := core.New("nested/advanced.md", now)
	require.NoError(t, advanced.Review(4, now))
	require.NoError(t, advanced.Review(3, now.AddDate(0, 0, 1)))

	for _, note := range []*core.Note{fresh, advanced} {
		require.NoError(t, repo.Create(ctx, note))

		stored, err := repo.FindByIdentity(ctx, note.Identity)
		require.NoError(t, err)
		assert.Equal(t, note.Identity, stored.Identity)
		assert.True(t, stored.NextDue.Equal(note.NextDue))
		assert.Equal(t, note.Scheduler, stored.Scheduler)
	}
}

func TestListDueOrderingAndTruncation(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	for identity, due := range map[string]time.Time{
		"old.md":         now.AddDate(0, 0, -2),
		"deep/older.md":  now.AddDate(0, 0, -1),
		"deep/future.md": now.AddDate(0, 0, 1),
	} {
		require.NoError(t, repo.Create(ctx, core.New(identity, due)))
	}

	due, err := repo.ListDue(ctx, 0, now, false)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "old.md", due[0].Identity)
	assert.Equal(t, "deep/older.md", due[1].Identity)

	limited, err := repo.ListDue(ctx, 1, now, false)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "old.md", limited[0].Identity)

	all, err := repo.ListDue(ctx, 0, now, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteNotFound(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	note := core.New("a.md", now)
	require.NoError(t, repo.Create(ctx, note))
	require.NoError(t, repo.Delete(ctx, note))

	err := repo.Delete(ctx, note)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestOversizeMetadataIsRejected(t *testing.T) {
	repo, root := setupRepo(t)
	ctx := context.Background()

	// A hostile or corrupted metadata file well past the 10 KiB ceiling.
	blob := "identity: big.md\nnext_due: 2026-08-25T10:00:00Z\njunk: " + strings.Repeat("x", 16*1024) + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "big.md.metadata"), []byte(blob), 0644))

	_, err := repo.FindByIdentity(ctx, "big.md")
	require.ErrorIs(t, err, core.ErrSerialization)

	_, err = repo.ListDue(ctx, 0, time.Now(), true)
	require.ErrorIs(t, err, core.ErrSerialization)
}

func TestUnknownSchedulerTagFailsDecoding(t *testing.T) {
	repo, root := setupRepo(t)

	blob := "identity: odd.md\nnext_due: 2026-08-25T10:00:00Z\nscheduler:\n  type: Leitner\n  box: 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "odd.md.metadata"), []byte(blob), 0644))

	_, err := repo.FindByIdentity(context.Background(), "odd.md")
	require.ErrorIs(t, err, scheduler.ErrUnknownType)
}

func TestCorruptMetadataFailsDecoding(t *testing.T) {
	repo, root := setupRepo(t)

	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.md.metadata"), []byte("{not yaml: ["), 0644))

	_, err := repo.FindByIdentity(context.Background(), "bad.md")
	require.ErrorIs(t, err, core.ErrSerialization)
}
