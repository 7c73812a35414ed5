package step

import (
	"strconv"
	"strings"

	"github.com/roach88/stepgraph/internal/ir"
)

// Writer emits STEP tokens. Inside a parameter list opened with Begin or
// BeginList it writes the comma separators itself.
type Writer struct {
	sb     strings.Builder
	counts []int // items written at each open list level
}

// NewWriter creates an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// String returns everything written so far.
func (w *Writer) String() string {
	return w.sb.String()
}

// Raw writes s verbatim, without a separator.
func (w *Writer) Raw(s string) {
	w.sb.WriteString(s)
}

// sep writes a comma when the current list already holds an item.
func (w *Writer) sep() {
	if n := len(w.counts); n > 0 {
		if w.counts[n-1] > 0 {
			w.sb.WriteByte(',')
		}
		w.counts[n-1]++
	}
}

// Begin writes "KEYWORD(" and opens its parameter list.
func (w *Writer) Begin(keyword string) {
	w.sep()
	w.sb.WriteString(keyword)
	w.sb.WriteByte('(')
	w.counts = append(w.counts, 0)
}

// BeginList opens a nested list "(".
func (w *Writer) BeginList() {
	w.sep()
	w.sb.WriteByte('(')
	w.counts = append(w.counts, 0)
}

// End closes the innermost open list.
func (w *Writer) End() {
	w.sb.WriteByte(')')
	if n := len(w.counts); n > 0 {
		w.counts = w.counts[:n-1]
	}
}

// ID writes an identifier.
func (w *Writer) ID(id ir.ID) {
	w.sep()
	w.sb.WriteString(id.String())
}

// Integer writes an integer.
func (w *Writer) Integer(n ir.Integer) {
	w.sep()
	w.sb.WriteString(strconv.FormatInt(int64(n), 10))
}

// Real writes a real using FormatReal.
func (w *Writer) Real(f ir.Real) {
	w.sep()
	w.sb.WriteString(FormatReal(float64(f)))
}

// Label writes a quoted string, doubling embedded quotes.
func (w *Writer) Label(l ir.Label) {
	w.sep()
	w.sb.WriteByte('\'')
	w.sb.WriteString(strings.ReplaceAll(string(l), "'", "''"))
	w.sb.WriteByte('\'')
}

// GlobalID writes a GlobalId as a quoted string.
func (w *Writer) GlobalID(g ir.GlobalID) {
	w.Label(ir.Label(g))
}

// Enum writes an enumeration value wrapped in dots.
func (w *Writer) Enum(name string) {
	w.sep()
	w.sb.WriteByte('.')
	w.sb.WriteString(name)
	w.sb.WriteByte('.')
}

// Logical writes .T., .F. or .U.
func (w *Writer) Logical(l ir.Logical) {
	w.Enum(l.Letter())
}

// Omitted writes "$".
func (w *Writer) Omitted() {
	w.sep()
	w.sb.WriteString(ir.OmittedToken)
}

// Derived writes "*".
func (w *Writer) Derived() {
	w.sep()
	w.sb.WriteString(ir.DerivedToken)
}

// WriteRef writes the identifier of a typed reference.
func WriteRef[T any](w *Writer, r ir.Ref[T]) {
	w.ID(r.ID())
}

// WriteOpt writes the sentinel of an omitted or derived optional, or
// defers to write for a present value.
func WriteOpt[T any](w *Writer, o ir.Optional[T], write func(*Writer, T)) {
	switch o.Presence() {
	case ir.Derived:
		w.Derived()
	case ir.Present:
		v, _ := o.Value()
		write(w, v)
	default:
		w.Omitted()
	}
}

// WriteList writes a parenthesized list.
func WriteList[T any](w *Writer, items []T, write func(*Writer, T)) {
	w.BeginList()
	for _, item := range items {
		write(w, item)
	}
	w.End()
}
