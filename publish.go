package xlreport

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Publisher takes a finished workbook and delivers it somewhere.
type Publisher interface {
	Publish(ctx context.Context, name string, data []byte) error
}

// DirPublisher writes workbooks into a directory. Files are written to a
// temporary name and renamed into place, so readers never see a partial file.
type DirPublisher struct {
	Dir  string
	Perm os.FileMode // default 0o644
}

// Publish writes data to Dir/name.
func (p DirPublisher) Publish(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" || filepath.Base(name) != name {
		return fmt.Errorf("publish: invalid file name %q", name)
	}
	perm := p.Perm
	if perm == 0 {
		perm = 0o644
	}
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %q: %w", p.Dir, err)
	}
	return writeFileAtomic(filepath.Join(p.Dir, name), data, perm)
}

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers never see a partial file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %q: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %q: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %q: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename to %q: %w", path, err)
	}
	return nil
}

// WriterPublisher streams workbooks to an io.Writer, e.g. stdout or an HTTP
// response body.
type WriterPublisher struct {
	W io.Writer
}

// Publish writes data to W; name is ignored.
func (p WriterPublisher) Publish(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := p.W.Write(data); err != nil {
		return fmt.Errorf("publish %q: %w", name, err)
	}
	return nil
}

// PublishDocument renders doc once and hands the bytes to p under name.
func PublishDocument(ctx context.Context, doc *Document, p Publisher, name string) error {
	data, err := doc.WriteBytes()
	if err != nil {
		return err
	}
	if err := p.Publish(ctx, name, data); err != nil {
		return err
	}
	doc.opts.logger.Info().Str("name", name).Int("bytes", len(data)).Msg("workbook published")
	return nil
}
