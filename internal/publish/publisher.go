package publish

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Publisher persists one rendered listing document. The core's
// responsibility ends at producing the text; where it lands is the
// publisher's concern.
type Publisher interface {
	Publish(content []byte) error
}

// FilePublisher writes the document to a file atomically: the content goes
// to a temp file in the target directory first and is renamed over the
// destination only once fully written. A failed run never clobbers the
// previous output.
type FilePublisher struct {
	path string
}

// NewFilePublisher creates a publisher targeting the given path.
func NewFilePublisher(path string) *FilePublisher {
	return &FilePublisher{path: path}
}

// Publish writes the content to the configured path.
func (p *FilePublisher) Publish(content []byte) error {
	dir := filepath.Dir(p.path)

	tmp, err := os.CreateTemp(dir, ".drops-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(tmpName, p.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("persisting %s: %w", p.path, err)
	}

	return nil
}

// WriterPublisher writes the document to an io.Writer, typically standard
// output.
type WriterPublisher struct {
	w io.Writer
}

// NewWriterPublisher creates a publisher targeting the given writer.
func NewWriterPublisher(w io.Writer) *WriterPublisher {
	return &WriterPublisher{w: w}
}

// Publish writes the content to the writer.
func (p *WriterPublisher) Publish(content []byte) error {
	if _, err := p.w.Write(content); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
