// Package pdfmerge concatenates PDF documents into a single file.
package pdfmerge

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ErrNoDocuments is returned when writing a document nothing was appended to.
var ErrNoDocuments = errors.New("no documents to merge")

type part struct {
	name  string
	data  []byte
	pages int
}

// Document accumulates the pages of several PDFs in append order.
// It is not safe for concurrent use.
type Document struct {
	parts  []part
	logger *slog.Logger
}

// New creates an empty document.
func New(logger *slog.Logger) *Document {
	if logger == nil {
		logger = slog.Default()
	}
	return &Document{logger: logger}
}

// Append adds all pages of the PDF in data. name identifies the source in
// logs and errors. The bytes must be a readable PDF.
func (d *Document) Append(name string, data []byte) error {
	pages, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return fmt.Errorf("failed to read PDF %s: %w", name, err)
	}
	d.parts = append(d.parts, part{name: name, data: data, pages: pages})
	d.logger.Debug("appended document", "name", name, "pages", pages)
	return nil
}

// PageCount returns the number of pages appended so far.
func (d *Document) PageCount() int {
	n := 0
	for _, p := range d.parts {
		n += p.pages
	}
	return n
}

// WriteTo writes the merged PDF to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	switch len(d.parts) {
	case 0:
		return 0, ErrNoDocuments
	case 1:
		n, err := w.Write(d.parts[0].data)
		return int64(n), err
	}

	readers := make([]io.ReadSeeker, len(d.parts))
	for i, p := range d.parts {
		readers[i] = bytes.NewReader(p.data)
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, nil); err != nil {
		return 0, fmt.Errorf("failed to merge %d documents: %w", len(d.parts), err)
	}
	return buf.WriteTo(w)
}

// WriteFile writes the merged PDF to path. The file is written under a
// temporary name in the same directory and renamed into place, so a failed
// merge never leaves a truncated output behind.
func (d *Document) WriteFile(path string) error {
	if len(d.parts) == 0 {
		return ErrNoDocuments
	}

	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if _, err := d.WriteTo(f); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move output into place: %w", err)
	}

	d.logger.Info("wrote merged PDF", "path", path, "documents", len(d.parts), "pages", d.PageCount())
	return nil
}
