package memdb

import (
	"strconv"
	"strings"

	"github.com/pauldmccarthy/porm"
	"github.com/pkg/errors"
)

var ErrBadStatement = errors.New("malformed statement")

// The grammar is the dialect porm emits, nothing more:
//
//	select * from <table> [where <col> <op> <value>]
//	insert into <table> (<f>,...) values (<v>,...)
//	update <table> set <f>=<v>,... where id=<int>
//
// Values are numbers, single-quoted strings, or null. Operators are
// =, !=, <>, <, <=, > and >=.

type selectStmt struct {
	table  string
	filter *filter
}

type insertStmt struct {
	table  string
	fields []string
	values []porm.Value
}

type updateStmt struct {
	table  string
	fields []string
	values []porm.Value
	id     int64
}

type filter struct {
	col string
	op  string
	arg porm.Value
}

type tokKind int

const (
	tokIdent tokKind = iota
	tokNumber
	tokString
	tokOp
	tokPunct
)

type token struct {
	kind tokKind
	text string
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isOpChar(c byte) bool {
	return c == '=' || c == '!' || c == '<' || c == '>'
}

func lex(stmt string) ([]token, error) {
	var toks []token

	for i := 0; i < len(stmt); {
		c := stmt[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n':
			i++

		case c == '\'':
			j := strings.IndexByte(stmt[i+1:], '\'')
			if j < 0 {
				return nil, errors.Wrapf(ErrBadStatement, "unterminated string in %q", stmt)
			}

			toks = append(toks, token{kind: tokString, text: stmt[i+1 : i+1+j]})
			i += j + 2

		case c == '(' || c == ')' || c == ',' || c == '*':
			toks = append(toks, token{kind: tokPunct, text: string(c)})
			i++

		case isOpChar(c):
			j := i
			for j < len(stmt) && isOpChar(stmt[j]) {
				j++
			}

			toks = append(toks, token{kind: tokOp, text: stmt[i:j]})
			i = j

		case c == '-' || (c >= '0' && c <= '9'):
			j := i + 1
			for j < len(stmt) && (stmt[j] == '.' || stmt[j] == 'e' || stmt[j] == '+' ||
				stmt[j] == '-' || (stmt[j] >= '0' && stmt[j] <= '9')) {
				j++
			}

			toks = append(toks, token{kind: tokNumber, text: stmt[i:j]})
			i = j

		case isIdentChar(c):
			j := i
			for j < len(stmt) && isIdentChar(stmt[j]) {
				j++
			}

			toks = append(toks, token{kind: tokIdent, text: stmt[i:j]})
			i = j

		default:
			return nil, errors.Wrapf(ErrBadStatement, "unexpected character %q in %q", c, stmt)
		}
	}

	return toks, nil
}

type parser struct {
	toks []token
	pos  int
	stmt string
}

func parse(stmt string) (interface{}, error) {
	toks, err := lex(stmt)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks, stmt: stmt}

	kw, ok := p.peekIdent()
	if !ok {
		return nil, p.fail("expected a statement keyword")
	}

	switch strings.ToLower(kw) {
	case "select":
		return p.parseSelect()
	case "insert":
		return p.parseInsert()
	case "update":
		return p.parseUpdate()
	default:
		return nil, p.fail("unsupported statement")
	}
}

func (p *parser) fail(msg string) error {
	return errors.Wrapf(ErrBadStatement, "%s in %q", msg, p.stmt)
}

func (p *parser) next() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}

	t := p.toks[p.pos]
	p.pos++
	return t, true
}

func (p *parser) peekIdent() (string, bool) {
	if p.pos >= len(p.toks) || p.toks[p.pos].kind != tokIdent {
		return "", false
	}

	return p.toks[p.pos].text, true
}

func (p *parser) keyword(kw string) bool {
	t, ok := p.peekIdent()
	if !ok || !strings.EqualFold(t, kw) {
		return false
	}

	p.pos++
	return true
}

func (p *parser) punct(s string) bool {
	if p.pos >= len(p.toks) || p.toks[p.pos].kind != tokPunct || p.toks[p.pos].text != s {
		return false
	}

	p.pos++
	return true
}

func (p *parser) ident() (string, bool) {
	t, ok := p.peekIdent()
	if ok {
		p.pos++
	}

	return t, ok
}

func (p *parser) done() bool {
	return p.pos >= len(p.toks)
}

// value parses a number, quoted string or null. Quoted numeric text is
// coerced back to a number, the way sqlite's numeric affinity would.
func (p *parser) value() (porm.Value, bool) {
	t, ok := p.next()
	if !ok {
		return porm.Value{}, false
	}

	switch t.kind {
	case tokNumber:
		return numberValue(t.text)
	case tokString:
		return coerceText(t.text), true
	case tokIdent:
		if strings.EqualFold(t.text, "null") {
			return porm.NullValue(), true
		}
	}

	return porm.Value{}, false
}

func numberValue(text string) (porm.Value, bool) {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return porm.IntValue(n), true
	}

	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return porm.FloatValue(f), true
	}

	return porm.Value{}, false
}

func coerceText(s string) porm.Value {
	if v, ok := numberValue(s); ok && s != "" {
		return v
	}

	if strings.EqualFold(s, "null") {
		return porm.NullValue()
	}

	return porm.TextValue(s)
}

func (p *parser) parseSelect() (*selectStmt, error) {
	if !p.keyword("select") || !p.punct("*") || !p.keyword("from") {
		return nil, p.fail("expected select * from")
	}

	table, ok := p.ident()
	if !ok {
		return nil, p.fail("expected table name")
	}

	s := &selectStmt{table: table}
	if p.done() {
		return s, nil
	}

	if !p.keyword("where") {
		return nil, p.fail("expected where")
	}

	col, ok := p.ident()
	if !ok {
		return nil, p.fail("expected filter column")
	}

	opTok, ok := p.next()
	if !ok || opTok.kind != tokOp {
		return nil, p.fail("expected filter operator")
	}

	arg, ok := p.value()
	if !ok {
		return nil, p.fail("expected filter value")
	}

	if !p.done() {
		return nil, p.fail("trailing tokens after filter")
	}

	s.filter = &filter{col: col, op: opTok.text, arg: arg}
	return s, nil
}

func (p *parser) parseInsert() (*insertStmt, error) {
	if !p.keyword("insert") || !p.keyword("into") {
		return nil, p.fail("expected insert into")
	}

	table, ok := p.ident()
	if !ok {
		return nil, p.fail("expected table name")
	}

	s := &insertStmt{table: table}

	if !p.punct("(") {
		return nil, p.fail("expected field list")
	}

	for {
		f, ok := p.ident()
		if !ok {
			return nil, p.fail("expected field name")
		}

		s.fields = append(s.fields, f)

		if p.punct(")") {
			break
		}

		if !p.punct(",") {
			return nil, p.fail("expected , or ) in field list")
		}
	}

	if !p.keyword("values") || !p.punct("(") {
		return nil, p.fail("expected values list")
	}

	for {
		v, ok := p.value()
		if !ok {
			return nil, p.fail("expected value")
		}

		s.values = append(s.values, v)

		if p.punct(")") {
			break
		}

		if !p.punct(",") {
			return nil, p.fail("expected , or ) in values list")
		}
	}

	if !p.done() {
		return nil, p.fail("trailing tokens after values")
	}

	if len(s.fields) != len(s.values) {
		return nil, p.fail("field and value counts differ")
	}

	return s, nil
}

func (p *parser) parseUpdate() (*updateStmt, error) {
	if !p.keyword("update") {
		return nil, p.fail("expected update")
	}

	table, ok := p.ident()
	if !ok {
		return nil, p.fail("expected table name")
	}

	if !p.keyword("set") {
		return nil, p.fail("expected set")
	}

	s := &updateStmt{table: table}

	for {
		f, ok := p.ident()
		if !ok {
			return nil, p.fail("expected field name")
		}

		eq, ok := p.next()
		if !ok || eq.kind != tokOp || eq.text != "=" {
			return nil, p.fail("expected = in assignment")
		}

		v, ok := p.value()
		if !ok {
			return nil, p.fail("expected assignment value")
		}

		s.fields = append(s.fields, f)
		s.values = append(s.values, v)

		if !p.punct(",") {
			break
		}
	}

	if !p.keyword("where") {
		return nil, p.fail("expected where id=")
	}

	col, ok := p.ident()
	if !ok || col != "id" {
		return nil, p.fail("updates filter on id only")
	}

	eq, ok := p.next()
	if !ok || eq.kind != tokOp || eq.text != "=" {
		return nil, p.fail("expected = after id")
	}

	idVal, ok := p.value()
	if !ok {
		return nil, p.fail("expected id value")
	}

	id, ok := idVal.Int()
	if !ok {
		return nil, p.fail("id must be an integer")
	}

	if !p.done() {
		return nil, p.fail("trailing tokens after where")
	}

	s.id = id
	return s, nil
}
