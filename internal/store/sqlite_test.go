package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSQLiteBackend_InMemory(t *testing.T) {
	b, err := OpenSQLite(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	_, ok, err := b.Read("k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, b.Write("k", `["a"]`))
	require.NoError(t, b.Write("k", `["a","b"]`))

	v, ok, err := b.Read("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `["a","b"]`, v)

	require.NoError(t, b.Delete("k"))
	_, ok, err = b.Read("k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLiteBackend_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	b, err := OpenSQLite(path, false)
	require.NoError(t, err)
	s := New(b)
	require.NoError(t, s.Set(KeyProjects, []string{"1", "2"}))
	require.NoError(t, b.Close())

	b2, err := OpenSQLite(path, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b2.Close() })

	var ids []string
	require.True(t, New(b2).Get(KeyProjects, &ids))
	require.Equal(t, []string{"1", "2"}, ids)
}
