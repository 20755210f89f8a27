package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// Supported serialization formats.
const (
	// FormatJSON writes one pretty-printed JSON array.
	FormatJSON = "json"

	// FormatNDJSON writes one record per line.
	FormatNDJSON = "ndjson"
)

// Writer serializes advisory records to a file or io.Writer in the
// configured format. The whole result sequence is written in one call,
// so output files are either complete or absent.
type Writer struct {
	mu        sync.Mutex
	output    io.Writer
	format    string
	count     int
	closeFunc func() error
}

// NewWriter creates a writer that writes to the specified output.
func NewWriter(w io.Writer, format string) *Writer {
	return &Writer{
		output: w,
		format: format,
	}
}

// NewFileWriter creates a writer that writes to a file, creating it or
// truncating any existing content. The caller must call Close() when
// done to ensure the file is properly closed.
func NewFileWriter(filename, format string) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &Writer{
		output:    file,
		format:    format,
		closeFunc: file.Close,
	}, nil
}

// WriteAll serializes the complete result sequence in the configured
// format, preserving record order.
func (w *Writer) WriteAll(records []json.RawMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if records == nil {
		records = []json.RawMessage{}
	}

	switch w.format {
	case FormatNDJSON:
		encoder := json.NewEncoder(w.output)
		for _, record := range records {
			if err := encoder.Encode(record); err != nil {
				return fmt.Errorf("failed to write record: %w", err)
			}
		}
	default:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize advisories: %w", err)
		}
		data = append(data, '\n')
		if _, err := w.output.Write(data); err != nil {
			return fmt.Errorf("failed to write advisories: %w", err)
		}
	}

	w.count += len(records)
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close closes the underlying writer if it's a file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closeFunc != nil {
		return w.closeFunc()
	}
	return nil
}
