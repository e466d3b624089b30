// Package export writes simulation results as JSON documents, optionally
// compressed, and reads them back.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"

	"github.com/pagesim/pagesim/sim"
)

// Compression selects the stream codec wrapped around the JSON document.
type Compression string

const (
	CompressionNone   Compression = "none"
	CompressionSnappy Compression = "snappy"
	CompressionLZ4    Compression = "lz4"
)

// validCompressions maps accepted codec names.
var validCompressions = map[Compression]bool{
	CompressionNone:   true,
	CompressionSnappy: true,
	CompressionLZ4:    true,
	"":                true, // empty defaults to none
}

// IsValidCompression returns true if name is a recognized codec.
func IsValidCompression(name string) bool {
	return validCompressions[Compression(name)]
}

// Document kinds.
const (
	KindComparison = "comparison"
	KindBatch      = "batch"
)

// Document is the exported envelope. Exactly one payload is set, matching Kind.
type Document struct {
	Kind       string                `json:"kind"`
	Comparison *sim.ComparisonResult `json:"comparison,omitempty"`
	Batch      *sim.BatchReport      `json:"batch,omitempty"`
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// NewWriter wraps w with the given codec. Close must be called to flush
// compressed output; it does not close w.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case "", CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionSnappy:
		return snappy.NewBufferedWriter(w), nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression %q", c)
	}
}

// NewReader wraps r with the decoder for the given codec.
func NewReader(r io.Reader, c Compression) (io.Reader, error) {
	switch c {
	case "", CompressionNone:
		return r, nil
	case CompressionSnappy:
		return snappy.NewReader(r), nil
	case CompressionLZ4:
		return lz4.NewReader(r), nil
	default:
		return nil, fmt.Errorf("unsupported compression %q", c)
	}
}

// WriteComparison writes a single comparison result.
func WriteComparison(w io.Writer, res *sim.ComparisonResult, c Compression) error {
	return writeDocument(w, &Document{Kind: KindComparison, Comparison: res}, c)
}

// WriteBatch writes a batch report.
func WriteBatch(w io.Writer, report *sim.BatchReport, c Compression) error {
	return writeDocument(w, &Document{Kind: KindBatch, Batch: report}, c)
}

func writeDocument(w io.Writer, doc *Document, c Compression) error {
	cw, err := NewWriter(w, c)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		_ = cw.Close()
		return fmt.Errorf("encoding %s document: %w", doc.Kind, err)
	}
	if err := cw.Close(); err != nil {
		return fmt.Errorf("flushing %s document: %w", c, err)
	}
	return nil
}

// ReadDocument reads a document written by WriteComparison or WriteBatch.
// Batch summaries are recomputed from the results so best/worst references
// point into the decoded result slice.
func ReadDocument(r io.Reader, c Compression) (*Document, error) {
	cr, err := NewReader(r, c)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.NewDecoder(cr).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	switch doc.Kind {
	case KindComparison:
		if doc.Comparison == nil {
			return nil, fmt.Errorf("comparison document has no payload")
		}
	case KindBatch:
		if doc.Batch == nil {
			return nil, fmt.Errorf("batch document has no payload")
		}
		doc.Batch.Summary = sim.SummarizeBatch(doc.Batch.Summary.PolicyA, doc.Batch.Summary.PolicyB, doc.Batch.Results)
	default:
		return nil, fmt.Errorf("unknown document kind %q", doc.Kind)
	}
	return &doc, nil
}
