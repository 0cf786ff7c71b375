package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"
)

func TestReadText(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name     string
		content  []byte
		opts     readOptions
		expected string
	}{
		{name: "empty", content: []byte{}, expected: ""},
		{name: "utf-8", content: []byte("café\n"), expected: "café\n"},
		{name: "crlf", content: []byte("a\r\nb\r\n"), expected: "a\nb\n"},
		{name: "lone cr", content: []byte("a\rb"), expected: "a\nb"},
		{name: "cr before crlf", content: []byte("a\r\r\nb"), expected: "a\n\nb"},
		{name: "raw newlines", content: []byte("a\r\nb\r"), opts: readOptions{rawNewlines: true}, expected: "a\r\nb\r"},
		{name: "byte order mark kept", content: []byte("\xEF\xBB\xBFx"), expected: "\uFEFFx"},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeTempFile(t, tc.content)
			got, err := readText(context.Background(), path, tc.opts)
			assert.NilError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestReadText_invalidUTF8(t *testing.T) {
	t.Parallel()

	for _, content := range [][]byte{
		{0xff, 0xfe},
		[]byte("caf\xe9"),
		[]byte("truncated \xc3"),
	} {
		path := writeTempFile(t, content)
		_, err := readText(context.Background(), path, readOptions{})
		assert.Assert(t, errors.Is(err, encoding.ErrInvalidUTF8), "content %q: %v", content, err)
		assert.Assert(t, cmp.Contains(err.Error(), path))
	}
}

func TestReadText_missingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nope.txt")
	_, err := readText(context.Background(), path, readOptions{})
	assert.Assert(t, errors.Is(err, os.ErrNotExist))
}

func TestReadText_directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := readText(context.Background(), dir, readOptions{})
	assert.ErrorContains(t, err, "is a directory")
}

func TestReadText_permissionDenied(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("root can read files regardless of mode")
	}

	path := writeTempFile(t, []byte("secret"))
	assert.NilError(t, os.Chmod(path, 0o000))

	_, err := readText(context.Background(), path, readOptions{})
	assert.Assert(t, errors.Is(err, os.ErrPermission))
}

func TestReadText_cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := writeTempFile(t, []byte("hello"))
	_, err := readText(ctx, path, readOptions{})
	assert.Assert(t, errors.Is(err, context.Canceled))
}

func writeTempFile(t *testing.T, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}

	return path
}
