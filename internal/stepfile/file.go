package stepfile

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/stepgraph/internal/ir"
	"github.com/roach88/stepgraph/internal/model"
	"github.com/roach88/stepgraph/internal/step"
)

// File is a parsed or constructed exchange file.
type File struct {
	Header Header
	Data   *model.Store
}

// New creates a file with an empty data section.
func New(header Header) *File {
	return &File{Header: header, Data: model.NewStore()}
}

// Options controls parsing.
type Options struct {
	// Strict makes a modeled record that fails its grammar, or a repeated
	// identifier, abort the parse. By default the record is kept as
	// opaque text and a repeated identifier replaces the earlier record.
	Strict bool
}

// Parse parses text with default options.
func Parse(text string) (*File, error) {
	return ParseWith(text, Options{})
}

// ParseWith parses a complete file. Any failure aborts the whole parse.
func ParseWith(text string, opts Options) (*File, error) {
	p := step.NewParser(text)

	if err := p.Literal(ir.FormatVersion); err != nil {
		return nil, fmt.Errorf("file: %w", err)
	}
	if err := p.Terminator(); err != nil {
		return nil, fmt.Errorf("file: %w", err)
	}

	header, err := parseHeader(p)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	f := New(header)

	if err := p.ExpectKeyword(kwData); err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	if err := p.Terminator(); err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	for p.Peek() == ir.IDPrefix {
		if err := parseInstance(p, f.Data, opts); err != nil {
			return nil, fmt.Errorf("data: %w", err)
		}
	}
	if err := endSection(p); err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}

	if err := p.Literal("END-" + ir.FormatVersion); err != nil {
		return nil, fmt.Errorf("footer: %w", err)
	}
	if err := p.Terminator(); err != nil {
		return nil, fmt.Errorf("footer: %w", err)
	}
	if !p.AtEnd() {
		return nil, fmt.Errorf("footer: %w", p.Errorf("unexpected input after footer"))
	}

	slog.Debug("parsed file", "records", f.Data.Len(), "schema", header.Schema.Schemas)
	return f, nil
}

// parseInstance parses "#id= BODY;" into s.
func parseInstance(p *step.Parser, s *model.Store, opts Options) error {
	id, err := p.ID()
	if err != nil {
		return err
	}
	if err := p.Literal("="); err != nil {
		return err
	}

	rec, err := parseBody(p, id, opts)
	if err != nil {
		return fmt.Errorf("record %s: %w", id, err)
	}

	if prev := s.InsertAt(id, rec); prev != nil {
		if opts.Strict {
			return fmt.Errorf("record %s: %w", id, p.Errorf("identifier %s defined twice", id))
		}
		slog.Warn("duplicate identifier replaces earlier record",
			"id", id.String(),
			"previous", model.TypeName(prev),
			"current", model.TypeName(rec))
	}
	return nil
}

func parseBody(p *step.Parser, id ir.ID, opts Options) (model.Record, error) {
	start := p.Pos()
	kw, err := p.Keyword()
	if err != nil {
		return nil, err
	}
	p.Reset(start)

	if model.Known(kw) {
		rec, err := model.ParseRecord(p)
		if err == nil {
			if err = p.Terminator(); err == nil {
				return rec, nil
			}
		}
		if opts.Strict {
			return nil, err
		}
		slog.Debug("modeled record kept as opaque text",
			"id", id.String(),
			"keyword", kw,
			"error", err)
		p.Reset(start)
	}

	o, err := model.ParseOpaque(p)
	if err != nil {
		return nil, err
	}
	if err := p.Terminator(); err != nil {
		return nil, err
	}
	return o, nil
}

// WriteTo writes the file text to w.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, f.String())
	return int64(n), err
}

// String returns the file text. Records are written in identifier order.
func (f *File) String() string {
	var sb strings.Builder
	sb.WriteString(Preamble(f.Header))
	for id, rec := range f.Data.All() {
		sb.WriteString(InstanceText(id, rec))
		sb.WriteByte('\n')
	}
	sb.WriteString(Trailer)
	return sb.String()
}

// Trailer closes the data section and the file.
const Trailer = kwEndSection + ";\nEND-" + ir.FormatVersion + ";\n"

// Preamble returns everything written before the first record: the
// opening line, the header section and the DATA marker.
func Preamble(h Header) string {
	w := step.NewWriter()
	w.Raw(ir.FormatVersion + ";\n")
	h.write(w)
	w.Raw(kwData + ";\n")
	return w.String()
}

// InstanceText formats one data section line without its newline.
// Opaque bodies keep their source layout after the "=".
func InstanceText(id ir.ID, rec model.Record) string {
	var sb strings.Builder
	sb.WriteString(id.String())
	sb.WriteByte('=')
	if _, ok := rec.(*model.Opaque); !ok {
		sb.WriteByte(' ')
	}
	sb.WriteString(model.Format(rec))
	sb.WriteByte(';')
	return sb.String()
}

// TypeCounts returns the number of records per type name. Opaque records
// are counted under their keyword.
func (f *File) TypeCounts() map[string]int {
	counts := make(map[string]int)
	for _, rec := range f.Data.All() {
		counts[model.TypeName(rec)]++
	}
	return counts
}
