package model

import (
	"strings"

	"github.com/roach88/stepgraph/internal/ir"
	"github.com/roach88/stepgraph/internal/step"
)

// Opaque is a record whose keyword is not modeled, or that failed its
// typed grammar in lenient parsing. Body is the exact source text between
// the identifier assignment and the terminating ";", and is written back
// unchanged.
type Opaque struct {
	Keyword string
	Body    string
}

func (*Opaque) Kind() Kind { return KindOpaque }
func (*Opaque) record()    {}

func (r *Opaque) WriteStep(w *step.Writer) {
	w.Raw(r.Body)
}

// ParseOpaque captures one record body up to, not including, its ";".
// The body must start with a keyword.
func ParseOpaque(p *step.Parser) (*Opaque, error) {
	start := p.Pos()
	body, err := p.RawBody()
	if err != nil {
		return nil, err
	}
	kw, err := step.NewParser(body).Keyword()
	if err != nil {
		p.Reset(start)
		p.SkipSpace()
		return nil, p.Errorf("record body does not start with a keyword")
	}
	return &Opaque{Keyword: kw, Body: body}, nil
}

// ReferencedIDs returns the identifiers that appear in the body, in order
// of appearance. Text inside strings and comments is ignored.
func (r *Opaque) ReferencedIDs() []ir.ID {
	var ids []ir.ID
	s := r.Body
	for i := 0; i < len(s); {
		switch {
		case s[i] == '\'':
			i++
			for i < len(s) {
				if s[i] == '\'' {
					if i+1 < len(s) && s[i+1] == '\'' {
						i += 2
						continue
					}
					break
				}
				i++
			}
			i++
		case strings.HasPrefix(s[i:], "/*"):
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				return ids
			}
			i += 2 + end + 2
		case s[i] == ir.IDPrefix:
			j := i + 1
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			if id, err := ir.ParseID(s[i:j]); err == nil {
				ids = append(ids, id)
			}
			i = j
		default:
			i++
		}
	}
	return ids
}
