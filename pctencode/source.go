package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

type readOptions struct {
	rawNewlines bool
}

// Text mode reads translate CRLF and lone CR to LF. "\r\n" must stay first.
var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

type readResult struct {
	text string
	err  error
}

// readText loads path as UTF-8 text. Opening a FIFO blocks until a writer
// shows up, so the open and the read run on their own goroutine and
// readText returns ctx.Err() as soon as ctx is done. The file is closed
// when that goroutine finishes.
func readText(ctx context.Context, path string, opts readOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	done := make(chan readResult, 1)
	go func() {
		text, err := readFile(ctx, path, opts)
		done <- readResult{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.text, r.err
	}
}

func readFile(ctx context.Context, path string, opts readOptions) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return "", fmt.Errorf("%s: is a directory", path)
	}

	r := transform.NewReader(&ctxReader{ctx: ctx, r: f}, encoding.UTF8Validator)
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	text := string(b)
	if !opts.rawNewlines {
		text = newlineReplacer.Replace(text)
	}

	return text, nil
}

// ctxReader stops a read loop between chunks once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
