package search

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elijahr/lk/internal/models"
	"github.com/elijahr/lk/internal/pattern"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func TestScanner_Run(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt": "foo bar foo",
		"b.txt": "nothing here",
		"c.txt": "one\nfoo two\n",
	})

	s := NewScanner(pattern.MustCompile("foo", pattern.Options{}))
	task := models.NewSearchTask(dir, []string{"a.txt", "b.txt", "c.txt"}, false)

	result, err := s.Run(context.Background(), task)
	require.NoError(t, err)

	assert.Equal(t, dir, result.Directory)
	assert.Equal(t, []string{"a.txt", "c.txt"}, result.FileNames())
	assert.Len(t, result.Files["a.txt"][1], 2)
	assert.Len(t, result.Files["c.txt"][2], 1)
	assert.Equal(t, 3, result.Stats.FilesScanned)
	assert.Equal(t, 0, result.Stats.FilesSkipped)
	assert.Equal(t, 3, result.Stats.Matches)
	assert.Equal(t, int64(len("foo bar foo")+len("nothing here")+len("one\nfoo two\n")), result.Stats.BytesScanned)
}

func TestScanner_SkipsBinaryFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"bin.dat":  "foo\x00foo",
		"text.txt": "foo",
	})
	files := []string{"bin.dat", "text.txt"}
	p := pattern.MustCompile("foo", pattern.Options{})

	t.Run("binary disallowed", func(t *testing.T) {
		result, err := NewScanner(p).Run(context.Background(), models.NewSearchTask(dir, files, false))
		require.NoError(t, err)

		assert.Equal(t, []string{"text.txt"}, result.FileNames())
		assert.Equal(t, 1, result.Stats.FilesSkipped)
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, models.SkippedFile{Name: "bin.dat", Reason: ErrBinary.Error()}, result.Skipped[0])
	})

	t.Run("binary allowed", func(t *testing.T) {
		result, err := NewScanner(p).Run(context.Background(), models.NewSearchTask(dir, files, true))
		require.NoError(t, err)

		assert.Equal(t, []string{"bin.dat", "text.txt"}, result.FileNames())
		assert.Len(t, result.Files["bin.dat"][1], 2)
	})
}

func TestScanner_SkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"ok.txt": "foo"})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))

	files := []string{"missing.txt", "subdir", "ok.txt"}
	if runtime.GOOS != "windows" && os.Geteuid() != 0 {
		writeFiles(t, dir, map[string]string{"locked.txt": "foo"})
		require.NoError(t, os.Chmod(filepath.Join(dir, "locked.txt"), 0000))
		files = append(files, "locked.txt")
	}

	s := NewScanner(pattern.MustCompile("foo", pattern.Options{}))
	result, err := s.Run(context.Background(), models.NewSearchTask(dir, files, false))
	require.NoError(t, err)

	assert.Equal(t, []string{"ok.txt"}, result.FileNames())
	assert.Equal(t, len(files)-1, result.Stats.FilesSkipped)
}

func TestScanner_EmptyTask(t *testing.T) {
	dir := t.TempDir()

	result, err := NewScanner(pattern.MustCompile("x", pattern.Options{})).
		Run(context.Background(), models.NewSearchTask(dir, nil, false))
	require.NoError(t, err)

	require.NotNil(t, result)
	assert.True(t, result.IsEmpty())
}

func TestScanner_CancelledReturnsNoResult(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "foo"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewScanner(pattern.MustCompile("foo", pattern.Options{})).
		Run(ctx, models.NewSearchTask(dir, []string{"a.txt"}, false))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadSearchable(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"nul": "a\x00b"})

	_, err := ReadSearchable(filepath.Join(dir, "nul"), false)
	assert.ErrorIs(t, err, ErrBinary)

	data, err := ReadSearchable(filepath.Join(dir, "nul"), true)
	require.NoError(t, err)
	assert.Equal(t, []byte("a\x00b"), data)

	_, err = ReadSearchable(dir, true)
	assert.ErrorIs(t, err, ErrNotRegular)
}
