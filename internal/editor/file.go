package editor

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// File is a user-selected file whose contents can be read as text.
type File interface {
	Name() string
	ReadText(ctx context.Context) (string, error)
}

// TextFile is an in-memory File.
type TextFile struct {
	FileName string
	Text     string
}

func (f TextFile) Name() string { return f.FileName }

func (f TextFile) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.Text, nil
}

// OSFile is a File on the local file system.
type OSFile string

func (f OSFile) Name() string { return filepath.Base(string(f)) }

// ReadText reads the whole file. The text is returned byte for byte; no
// encoding or size validation is applied.
func (f OSFile) ReadText(ctx context.Context) (string, error) {
	fp, err := os.Open(string(f))
	if err != nil {
		return "", errors.Wrap(err, "Load")
	}
	defer fp.Close()

	data, err := io.ReadAll(ctxReader{ctx: ctx, r: fp})
	if err != nil {
		return "", errors.Wrapf(err, "Load %s", f.Name())
	}
	return string(data), nil
}

// ctxReader stops a read between chunks once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
