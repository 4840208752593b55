package root

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamifylife/internal/storage"
)

func TestListAndDropKeys(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "gl.db"))
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewKVRepo(db)

	active := storage.DefaultStateKey
	require.NoError(t, repo.Put(ctx, active, `{"points":1}`))
	require.NoError(t, repo.Put(ctx, active+".bak", `{}`))
	require.NoError(t, repo.Put(ctx, "@gamify_todo_v5", `{}`))

	var out bytes.Buffer
	require.NoError(t, listKeys(ctx, &out, repo, active))
	assert.Contains(t, out.String(), "@gamify_todo_v5")
	assert.Contains(t, out.String(), "stale")
	assert.Contains(t, out.String(), "backup")
	assert.Contains(t, out.String(), "active")

	err = dropKey(ctx, repo, active, active)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "active")

	require.Error(t, dropKey(ctx, repo, active, "missing"))
	require.NoError(t, dropKey(ctx, repo, active, "@gamify_todo_v5"))

	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{active, active + ".bak"}, keys)
}
