package filesystem

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestSyncAttachments(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	out := t.TempDir()

	writeFile(t, filepath.Join(src, "attachments", "logo.png"), "png")
	writeFile(t, filepath.Join(src, "posts", "attachments", "talk.pdf"), "pdf")
	writeFile(t, filepath.Join(src, "posts", "attachments", "cover.jpg"), "jpg")
	writeFile(t, filepath.Join(src, "posts", "trip", "attachments", "clip.mp4"), "mp4")
	writeFile(t, filepath.Join(src, "posts", "trip", "attachments", "data", "table.csv"), "csv")
	writeFile(t, filepath.Join(src, "posts", "trip", "index.md"), "# Trip")

	n, err := SyncAttachments(src, out)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	assert.FileExists(t, filepath.Join(out, "attachments", "logo.png"))
	assert.FileExists(t, filepath.Join(out, "posts", "attachments", "talk.pdf"))
	assert.NoFileExists(t, filepath.Join(out, "posts", "attachments", "cover.jpg"))
	assert.FileExists(t, filepath.Join(out, "posts", "trip", "clip.mp4"))
	assert.FileExists(t, filepath.Join(out, "posts", "trip", "data", "table.csv"))
	assert.NoFileExists(t, filepath.Join(out, "posts", "trip", "index.md"))

	n, err = SyncAttachments(src, out)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "up-to-date files are skipped")
}

func TestSyncAttachmentsMissingContent(t *testing.T) {
	t.Parallel()

	n, err := SyncAttachments(filepath.Join(t.TempDir(), "missing"), t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCopyPreservesModTime(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	writeFile(t, src, "hello")

	stamp := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, stamp, stamp))

	require.NoError(t, Copy(src, dst))

	body, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	mod, err := FileModifiedTime(dst)
	require.NoError(t, err)
	assert.True(t, mod.Equal(stamp))

	assert.Error(t, Copy(dir, filepath.Join(dir, "c")))
}

func TestGatherFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "posts", "a.md"), "")
	writeFile(t, filepath.Join(root, "posts", "b", "index.MDX"), "")
	writeFile(t, filepath.Join(root, "posts", "b", "attachments", "c.md"), "")
	writeFile(t, filepath.Join(root, ".obsidian", "d.md"), "")
	writeFile(t, filepath.Join(root, "notes.txt"), "")

	paths, err := GatherFiles([]string{root}, []string{".md", ".mdx"}, "attachments")
	require.NoError(t, err)

	var rel []string
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}

	assert.ElementsMatch(t, []string{"posts/a.md", "posts/b/index.MDX"}, rel)
}

func TestFullSubtreeModifiedDate(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "index.md"), "")
	writeFile(t, filepath.Join(root, "attachments", "a.jpg"), "")
	writeFile(t, filepath.Join(root, ".obsidian", "workspace.json"), "")

	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	newest := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(root, "index.md"), old, old))
	require.NoError(t, os.Chtimes(filepath.Join(root, "attachments", "a.jpg"), newer, newer))
	require.NoError(t, os.Chtimes(filepath.Join(root, ".obsidian", "workspace.json"), newest, newest))

	mod, err := FullSubtreeModifiedDate(root)
	require.NoError(t, err)
	assert.True(t, mod.Equal(newer))

	_, err = FullSubtreeModifiedDate(filepath.Join(root, "index.md"))
	assert.Error(t, err)
}

func TestInstallEmbedFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"static/style.css":    {Data: []byte("body{}")},
		"static/js/site.js":   {Data: []byte("x()")},
		"templates/page.html": {Data: []byte("<p>")},
	}

	root := filepath.Join(t.TempDir(), "res")

	n, err := InstallEmbedFS(fsys, "static", root)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.FileExists(t, filepath.Join(root, "js", "site.js"))
	assert.NoFileExists(t, filepath.Join(root, "page.html"))

	n, err = InstallEmbedFS(fsys, "static", root)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
