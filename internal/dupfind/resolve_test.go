package dupfind_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/dupfind/internal/dupfind"
)

// inventoryOf builds an inventory of paths in the given order.
func inventoryOf(t *testing.T, paths ...string) *dupfind.Inventory {
	t.Helper()

	r := dupfind.NewRegistry(0)
	for _, p := range paths {
		_, err := r.Register(p)
		require.NoError(t, err)
	}

	return r.Freeze()
}

func groupPaths(g dupfind.Group) []string {
	out := []string{g.Kept.Path}
	for _, m := range g.Redundant {
		out = append(out, m.Path)
	}

	return out
}

func TestResolveGroups(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, map[string][]byte{
		"/a": []byte("one"),
		"/b": []byte("two"),
		"/c": []byte("one"),
		"/d": []byte("two"),
		"/e": []byte("three"),
		"/f": []byte("one"),
	})

	inv := inventoryOf(t, "/a", "/b", "/c", "/d", "/e", "/f")

	res := dupfind.Resolve(fsys, inv, dupfind.Options{})

	require.Len(t, res.Groups, 2)
	assert.Equal(t, []string{"/a", "/c", "/f"}, groupPaths(res.Groups[0]))
	assert.Equal(t, []string{"/b", "/d"}, groupPaths(res.Groups[1]))
	assert.Equal(t, 0, res.Groups[0].Kept.Index)
	assert.Equal(t, 2, res.Groups[0].Redundant[0].Index)
	assert.Equal(t, 3, res.Redundant())

	assert.Equal(t, int64(12), res.PathBytesBefore)
	assert.Equal(t, int64(6), res.PathBytesAfter)
	assert.Zero(t, res.Deleted)

	// Nothing is removed without Delete.
	for _, p := range []string{"/a", "/b", "/c", "/d", "/e", "/f"} {
		exists, err := afero.Exists(fsys, p)
		require.NoError(t, err)
		assert.True(t, exists, p)
	}
}

func TestResolveNoDuplicates(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, map[string][]byte{
		"/a": []byte("1"),
		"/b": []byte("2"),
	})

	res := dupfind.Resolve(fsys, inventoryOf(t, "/a", "/b"), dupfind.Options{Delete: true})

	assert.Empty(t, res.Groups)
	assert.Equal(t, res.PathBytesBefore, res.PathBytesAfter)
	assert.Zero(t, res.Deleted)
}

func TestResolveEmptyInventory(t *testing.T) {
	res := dupfind.Resolve(afero.NewMemMapFs(), inventoryOf(t), dupfind.Options{Delete: true})

	assert.Empty(t, res.Groups)
	assert.Zero(t, res.PathBytesBefore)
	assert.Zero(t, res.PathBytesAfter)
}

func TestResolveDelete(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, map[string][]byte{
		"/keep":  []byte("same"),
		"/dup1":  []byte("same"),
		"/other": []byte("different"),
		"/dup2":  []byte("same"),
	})

	inv := inventoryOf(t, "/keep", "/dup1", "/other", "/dup2")

	res := dupfind.Resolve(fsys, inv, dupfind.Options{Delete: true})

	require.Len(t, res.Groups, 1)
	assert.Equal(t, 2, res.Deleted)
	assert.Zero(t, res.DeleteErrors)

	for _, m := range res.Groups[0].Redundant {
		assert.True(t, m.Deleted)
		require.NoError(t, m.Err)
	}

	for path, want := range map[string]bool{"/keep": true, "/other": true, "/dup1": false, "/dup2": false} {
		exists, err := afero.Exists(fsys, path)
		require.NoError(t, err)
		assert.Equal(t, want, exists, path)
	}
}

func TestResolveDeleteFailure(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFiles(t, base, map[string][]byte{
		"/a": []byte("same"),
		"/b": []byte("same"),
		"/c": []byte("x"),
		"/d": []byte("x"),
	})

	// Reads succeed, removals fail.
	fsys := afero.NewReadOnlyFs(base)

	var diag bytes.Buffer

	res := dupfind.Resolve(fsys, inventoryOf(t, "/a", "/b", "/c", "/d"), dupfind.Options{Delete: true, Diagnostics: &diag})

	require.Len(t, res.Groups, 2, "a failed deletion must not stop resolution")
	assert.Equal(t, 2, res.DeleteErrors)
	assert.Zero(t, res.Deleted)
	assert.Error(t, res.Groups[0].Redundant[0].Err)
	assert.False(t, res.Groups[0].Redundant[0].Deleted)
	assert.Contains(t, diag.String(), "error deleting file /b")
	assert.Contains(t, diag.String(), "error deleting file /d")

	exists, err := afero.Exists(base, "/b")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestResolveVanishedFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, map[string][]byte{
		"/a": []byte("same"),
		"/c": []byte("same"),
	})

	// "/b" was registered but disappeared before resolution.
	res := dupfind.Resolve(fsys, inventoryOf(t, "/a", "/b", "/c"), dupfind.Options{})

	require.Len(t, res.Groups, 1)
	assert.Equal(t, []string{"/a", "/c"}, groupPaths(res.Groups[0]))
}

func TestScanAndResolveScenario(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]string{
		"a.txt": "hello",
		"b.txt": "hello",
		"c.jpg": "hello",
	})

	inv, err := dupfind.Scan(context.Background(), dupfind.Options{Path: root}, nil)
	require.NoError(t, err)

	require.Len(t, inv.Records, 3)
	assert.Equal(t, dupfind.Tally{2, 1, 0, 0, 0}, inv.Tally)

	res := dupfind.Resolve(afero.NewOsFs(), inv, dupfind.Options{Delete: true})

	require.Len(t, res.Groups, 1)

	group := res.Groups[0]

	// Registration order is not deterministic, the kept file is the first registered.
	assert.Equal(t, inv.Records[0].Path, group.Kept.Path)
	assert.Len(t, group.Redundant, 2)
	assert.FileExists(t, group.Kept.Path)

	for _, m := range group.Redundant {
		assert.NoFileExists(t, m.Path)
	}

	assert.Equal(t, int64(len(group.Kept.Path)), res.PathBytesAfter)
}

func TestScanAndResolveWithoutRecursion(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, map[string]string{
		"a.txt":     "hello",
		"sub/a.txt": "hello",
	})

	inv, err := dupfind.Scan(context.Background(), dupfind.Options{Path: root}, nil)
	require.NoError(t, err)

	res := dupfind.Resolve(afero.NewOsFs(), inv, dupfind.Options{Delete: true})

	assert.Empty(t, res.Groups)
	assert.FileExists(t, filepath.Join(root, "sub", "a.txt"))

	_, err = os.Stat(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
}
