package step

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/stepgraph/internal/ir"
)

// Parser is a cursor over STEP text.
// Token methods skip leading whitespace and comments before matching and
// leave the cursor unchanged when they fail.
type Parser struct {
	src string
	pos int
}

// NewParser creates a parser positioned at the start of src.
func NewParser(src string) *Parser {
	return &Parser{src: src}
}

// Pos returns the current byte offset.
func (p *Parser) Pos() int {
	return p.pos
}

// Reset moves the cursor back to a previously saved offset.
func (p *Parser) Reset(pos int) {
	p.pos = pos
}

// Slice returns the source text between two offsets.
func (p *Parser) Slice(from, to int) string {
	return p.src[from:to]
}

// Rest returns the unconsumed input.
func (p *Parser) Rest() string {
	return p.src[p.pos:]
}

// AtEnd reports whether only whitespace and comments remain.
func (p *Parser) AtEnd() bool {
	p.SkipSpace()
	return p.pos >= len(p.src)
}

// Errorf builds a parse failure at the current offset.
func (p *Parser) Errorf(format string, args ...any) *ParseError {
	return p.errorAt(p.pos, ErrCodeParseFailure, fmt.Sprintf(format, args...), nil)
}

func (p *Parser) errorAt(offset int, code ErrorCode, msg string, err error) *ParseError {
	return &ParseError{
		Code:      code,
		Message:   msg,
		Pos:       positionAt(p.src, offset),
		Remaining: remainingAt(p.src, offset),
		Err:       err,
	}
}

// SkipSpace consumes whitespace and /* ... */ comments.
// An unterminated comment consumes the rest of the input.
func (p *Parser) SkipSpace() {
	for p.pos < len(p.src) {
		switch ch := p.src[p.pos]; {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			p.pos++
		case ch == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '*':
			end := strings.Index(p.src[p.pos+2:], "*/")
			if end < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += 2 + end + 2
		default:
			return
		}
	}
}

// Peek returns the next significant byte, or 0 at end of input.
func (p *Parser) Peek() byte {
	p.SkipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

// TryLiteral consumes tok if it is next and reports whether it did.
func (p *Parser) TryLiteral(tok string) bool {
	p.SkipSpace()
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

// Literal consumes tok or fails.
func (p *Parser) Literal(tok string) error {
	if p.TryLiteral(tok) {
		return nil
	}
	return p.Errorf("expected %q", tok)
}

// Comma consumes a parameter separator.
func (p *Parser) Comma() error {
	return p.Literal(",")
}

// Open consumes "(".
func (p *Parser) Open() error {
	return p.Literal("(")
}

// Close consumes ")".
func (p *Parser) Close() error {
	return p.Literal(")")
}

// Terminator consumes ";".
func (p *Parser) Terminator() error {
	return p.Literal(";")
}

func isKeywordStart(ch byte) bool {
	return ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z' || ch == '_' || ch == '!'
}

func isKeywordPart(ch byte) bool {
	return isKeywordStart(ch) && ch != '!' || ch >= '0' && ch <= '9'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Keyword consumes a whole keyword token such as IFCWALL or FILE_NAME.
// Matching is on the complete token, so IFCBUILDING never matches a
// prefix of IFCBUILDINGSTOREY.
func (p *Parser) Keyword() (string, error) {
	p.SkipSpace()
	start := p.pos
	if start >= len(p.src) || !isKeywordStart(p.src[start]) {
		return "", p.Errorf("expected keyword")
	}
	end := start + 1
	for end < len(p.src) && isKeywordPart(p.src[end]) {
		end++
	}
	p.pos = end
	return p.src[start:end], nil
}

// ExpectKeyword consumes the keyword kw or fails without consuming.
func (p *Parser) ExpectKeyword(kw string) error {
	start := p.pos
	got, err := p.Keyword()
	if err != nil {
		return err
	}
	if got != kw {
		p.pos = start
		return p.Errorf("expected keyword %s, got %s", kw, got)
	}
	return nil
}

// ID consumes an identifier "#<digits>".
func (p *Parser) ID() (ir.ID, error) {
	p.SkipSpace()
	start := p.pos
	end := start
	if end < len(p.src) && p.src[end] == ir.IDPrefix {
		end++
		for end < len(p.src) && isDigit(p.src[end]) {
			end++
		}
	}
	id, err := ir.ParseID(p.src[start:end])
	if err != nil {
		return 0, p.errorAt(start, ErrCodeMalformedIdentifier, "expected identifier", err)
	}
	p.pos = end
	return id, nil
}

// scanNumber returns the end offset of a numeric literal at start and
// whether it contained a decimal point.
func (p *Parser) scanNumber(start int) (end int, real bool) {
	end = start
	if end < len(p.src) && (p.src[end] == '+' || p.src[end] == '-') {
		end++
	}
	digits := end
	for end < len(p.src) && isDigit(p.src[end]) {
		end++
	}
	if end == digits {
		return start, false
	}
	if end < len(p.src) && p.src[end] == '.' {
		real = true
		end++
		for end < len(p.src) && isDigit(p.src[end]) {
			end++
		}
		if end < len(p.src) && (p.src[end] == 'E' || p.src[end] == 'e') {
			exp := end + 1
			if exp < len(p.src) && (p.src[exp] == '+' || p.src[exp] == '-') {
				exp++
			}
			expDigits := exp
			for exp < len(p.src) && isDigit(p.src[exp]) {
				exp++
			}
			if exp > expDigits {
				end = exp
			}
		}
	}
	return end, real
}

// Integer consumes an integer literal. A literal with a decimal point is
// a real and does not match.
func (p *Parser) Integer() (ir.Integer, error) {
	p.SkipSpace()
	end, real := p.scanNumber(p.pos)
	if end == p.pos || real {
		return 0, p.Errorf("expected integer")
	}
	n, err := strconv.ParseInt(p.src[p.pos:end], 10, 64)
	if err != nil {
		return 0, p.errorAt(p.pos, ErrCodeParseFailure, "integer out of range", err)
	}
	p.pos = end
	return ir.Integer(n), nil
}

// Real consumes a real literal. The decimal point is mandatory.
func (p *Parser) Real() (ir.Real, error) {
	p.SkipSpace()
	end, real := p.scanNumber(p.pos)
	if end == p.pos || !real {
		return 0, p.Errorf("expected real")
	}
	f, err := strconv.ParseFloat(p.src[p.pos:end], 64)
	if err != nil {
		return 0, p.errorAt(p.pos, ErrCodeParseFailure, "invalid real", err)
	}
	p.pos = end
	return ir.Real(f), nil
}

// Label consumes a quoted string. A doubled quote inside the string
// stands for one quote character.
func (p *Parser) Label() (ir.Label, error) {
	p.SkipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '\'' {
		return "", p.Errorf("expected string")
	}
	var sb strings.Builder
	i := p.pos + 1
	for i < len(p.src) {
		ch := p.src[i]
		if ch == '\'' {
			if i+1 < len(p.src) && p.src[i+1] == '\'' {
				sb.WriteByte('\'')
				i += 2
				continue
			}
			p.pos = i + 1
			return ir.Label(sb.String()), nil
		}
		sb.WriteByte(ch)
		i++
	}
	return "", p.Errorf("unterminated string")
}

// GlobalID consumes a quoted 22 character GlobalId.
func (p *Parser) GlobalID() (ir.GlobalID, error) {
	start := p.pos
	l, err := p.Label()
	if err != nil {
		return "", err
	}
	g := ir.GlobalID(l)
	if !g.Valid() {
		p.pos = start
		p.SkipSpace()
		return "", p.Errorf("invalid global id %q", string(l))
	}
	return g, nil
}

// Enum consumes a dot-delimited enumeration value and returns its name.
func (p *Parser) Enum() (string, error) {
	p.SkipSpace()
	start := p.pos
	if start >= len(p.src) || p.src[start] != '.' {
		return "", p.Errorf("expected enumeration")
	}
	end := start + 1
	for end < len(p.src) && isKeywordPart(p.src[end]) {
		end++
	}
	if end == start+1 || end >= len(p.src) || p.src[end] != '.' {
		return "", p.Errorf("malformed enumeration")
	}
	p.pos = end + 1
	return p.src[start+1 : end], nil
}

// Logical consumes .T., .F. or .U.
func (p *Parser) Logical() (ir.Logical, error) {
	start := p.pos
	name, err := p.Enum()
	if err != nil {
		return ir.False, err
	}
	l, ok := ir.ParseLogical(name)
	if !ok {
		p.pos = start
		p.SkipSpace()
		return ir.False, p.Errorf("expected logical, got .%s.", name)
	}
	return l, nil
}

// RawBody consumes the text of one record body up to, but excluding, its
// terminating ";". Semicolons inside strings and comments do not terminate.
// The returned text is exactly what was in the source, leading layout included.
func (p *Parser) RawBody() (string, error) {
	start := p.pos
	i := start
	for i < len(p.src) {
		switch ch := p.src[i]; {
		case ch == '\'':
			i++
			for i < len(p.src) {
				if p.src[i] == '\'' {
					if i+1 < len(p.src) && p.src[i+1] == '\'' {
						i += 2
						continue
					}
					break
				}
				i++
			}
			if i >= len(p.src) {
				return "", p.errorAt(start, ErrCodeParseFailure, "unterminated string in record", nil)
			}
			i++
		case ch == '/' && i+1 < len(p.src) && p.src[i+1] == '*':
			end := strings.Index(p.src[i+2:], "*/")
			if end < 0 {
				return "", p.errorAt(start, ErrCodeParseFailure, "unterminated comment in record", nil)
			}
			i += 2 + end + 2
		case ch == ';':
			p.pos = i
			return p.src[start:i], nil
		default:
			i++
		}
	}
	return "", p.errorAt(start, ErrCodeParseFailure, "record is not terminated by ';'", nil)
}

// ParseRef consumes an identifier and tags it with T.
func ParseRef[T any](p *Parser) (ir.Ref[T], error) {
	id, err := p.ID()
	if err != nil {
		return ir.Ref[T]{}, err
	}
	return ir.NewRef[T](id), nil
}

// List consumes a parenthesized, comma separated list. Empty lists are allowed.
func List[T any](p *Parser, elem func(*Parser) (T, error)) ([]T, error) {
	start := p.pos
	if err := p.Open(); err != nil {
		return nil, err
	}
	items := []T{}
	if p.TryLiteral(")") {
		return items, nil
	}
	for {
		v, err := elem(p)
		if err != nil {
			p.pos = start
			return nil, err
		}
		items = append(items, v)
		if p.TryLiteral(",") {
			continue
		}
		if err := p.Close(); err != nil {
			p.pos = start
			return nil, err
		}
		return items, nil
	}
}

// Opt consumes "$", "*" or a value matched by elem.
// The sentinels are recognized before elem is attempted.
func Opt[T any](p *Parser, elem func(*Parser) (T, error)) (ir.Optional[T], error) {
	if p.TryLiteral(ir.OmittedToken) {
		return ir.None[T](), nil
	}
	if p.TryLiteral(ir.DerivedToken) {
		return ir.DerivedValue[T](), nil
	}
	v, err := elem(p)
	if err != nil {
		return ir.Optional[T]{}, err
	}
	return ir.Some(v), nil
}
