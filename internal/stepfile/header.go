package stepfile

import (
	"github.com/roach88/stepgraph/internal/ir"
	"github.com/roach88/stepgraph/internal/step"
)

// Header section keywords.
const (
	kwHeader          = "HEADER"
	kwData            = "DATA"
	kwEndSection      = "ENDSEC"
	kwFileDescription = "FILE_DESCRIPTION"
	kwFileName        = "FILE_NAME"
	kwFileSchema      = "FILE_SCHEMA"
)

// DefaultImplementationLevel is the implementation level of files written
// by this library.
const DefaultImplementationLevel = "2;1"

// DefaultSchema is the schema declared by new files.
const DefaultSchema = "IFC4"

// Header is the header section.
type Header struct {
	Description FileDescription
	Name        FileName
	Schema      FileSchema
}

// FileDescription is the FILE_DESCRIPTION header entity.
type FileDescription struct {
	Description         []ir.Label
	ImplementationLevel ir.Label
}

// FileName is the FILE_NAME header entity.
type FileName struct {
	Name                ir.Label
	TimeStamp           ir.Label
	Author              []ir.Label
	Organization        []ir.Label
	PreprocessorVersion ir.Label
	OriginatingSystem   ir.Label
	Authorization       ir.Label
}

// FileSchema is the FILE_SCHEMA header entity.
type FileSchema struct {
	Schemas []ir.Label
}

// NewHeader returns the header written for new files.
func NewHeader(name, timeStamp string) Header {
	return Header{
		Description: FileDescription{
			Description:         []ir.Label{"ViewDefinition [CoordinationView]"},
			ImplementationLevel: DefaultImplementationLevel,
		},
		Name: FileName{
			Name:                ir.Label(name),
			TimeStamp:           ir.Label(timeStamp),
			Author:              []ir.Label{""},
			Organization:        []ir.Label{""},
			PreprocessorVersion: "stepgraph " + ir.LibraryVersion,
			OriginatingSystem:   "stepgraph " + ir.LibraryVersion,
			Authorization:       "",
		},
		Schema: FileSchema{Schemas: []ir.Label{DefaultSchema}},
	}
}

func parseHeader(p *step.Parser) (Header, error) {
	var h Header
	if err := p.ExpectKeyword(kwHeader); err != nil {
		return h, err
	}
	if err := p.Terminator(); err != nil {
		return h, err
	}

	if err := entity(p, kwFileDescription, func() error {
		return fields(p,
			func() (err error) { h.Description.Description, err = labels(p); return },
			func() (err error) { h.Description.ImplementationLevel, err = p.Label(); return },
		)
	}); err != nil {
		return h, err
	}

	if err := entity(p, kwFileName, func() error {
		n := &h.Name
		return fields(p,
			func() (err error) { n.Name, err = p.Label(); return },
			func() (err error) { n.TimeStamp, err = p.Label(); return },
			func() (err error) { n.Author, err = labels(p); return },
			func() (err error) { n.Organization, err = labels(p); return },
			func() (err error) { n.PreprocessorVersion, err = p.Label(); return },
			func() (err error) { n.OriginatingSystem, err = p.Label(); return },
			func() (err error) { n.Authorization, err = p.Label(); return },
		)
	}); err != nil {
		return h, err
	}

	if err := entity(p, kwFileSchema, func() (err error) {
		h.Schema.Schemas, err = labels(p)
		return
	}); err != nil {
		return h, err
	}

	if err := endSection(p); err != nil {
		return h, err
	}
	return h, nil
}

// entity parses KEYWORD( params );
func entity(p *step.Parser, kw string, params func() error) error {
	if err := p.ExpectKeyword(kw); err != nil {
		return err
	}
	if err := p.Open(); err != nil {
		return err
	}
	if err := params(); err != nil {
		return err
	}
	if err := p.Close(); err != nil {
		return err
	}
	return p.Terminator()
}

// fields runs each parameter parser with commas in between.
func fields(p *step.Parser, params ...func() error) error {
	for i, param := range params {
		if i > 0 {
			if err := p.Comma(); err != nil {
				return err
			}
		}
		if err := param(); err != nil {
			return err
		}
	}
	return nil
}

func labels(p *step.Parser) ([]ir.Label, error) {
	return step.List(p, (*step.Parser).Label)
}

func endSection(p *step.Parser) error {
	if err := p.ExpectKeyword(kwEndSection); err != nil {
		return err
	}
	return p.Terminator()
}

func (h *Header) write(w *step.Writer) {
	w.Raw(kwHeader + ";\n")

	w.Begin(kwFileDescription)
	step.WriteList(w, h.Description.Description, (*step.Writer).Label)
	w.Label(h.Description.ImplementationLevel)
	w.End()
	w.Raw(";\n")

	n := &h.Name
	w.Begin(kwFileName)
	w.Label(n.Name)
	w.Label(n.TimeStamp)
	step.WriteList(w, n.Author, (*step.Writer).Label)
	step.WriteList(w, n.Organization, (*step.Writer).Label)
	w.Label(n.PreprocessorVersion)
	w.Label(n.OriginatingSystem)
	w.Label(n.Authorization)
	w.End()
	w.Raw(";\n")

	w.Begin(kwFileSchema)
	step.WriteList(w, h.Schema.Schemas, (*step.Writer).Label)
	w.End()
	w.Raw(";\n")

	w.Raw(kwEndSection + ";\n")
}
