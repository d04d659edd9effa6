package memdb

import (
	"github.com/pauldmccarthy/porm"
	"github.com/pkg/errors"
)

// match evaluates the filter against one row. Comparisons follow
// dynamic typing rules: numbers compare numerically across int and
// float, text compares lexically, null matches nothing, and values of
// different types are equal to nothing and ordered by nothing.
func (f *filter) match(r *row, t *table) (bool, error) {
	if !t.hasColumn(f.col) {
		return false, errors.Wrapf(ErrUnknownColumn, "table %s has no column %s", t.name, f.col)
	}

	cell, ok := r.cells[f.col]
	if !ok {
		cell = porm.NullValue()
	}

	switch f.op {
	case "=":
		return equal(cell, f.arg), nil
	case "!=", "<>":
		if cell.IsNull() || f.arg.IsNull() {
			return false, nil
		}
		return !equal(cell, f.arg), nil
	case "<", "<=", ">", ">=":
		return ordered(cell, f.arg, f.op)
	default:
		return false, errors.Wrapf(ErrBadStatement, "unsupported operator %s", f.op)
	}
}

func equal(a, b porm.Value) bool {
	if a.IsNull() || b.IsNull() {
		return false
	}

	if an, bn, ok := numericPair(a, b); ok {
		return an == bn
	}

	as, aok := a.Text()
	bs, bok := b.Text()
	return aok && bok && as == bs
}

func ordered(a, b porm.Value, op string) (bool, error) {
	if an, bn, ok := numericPair(a, b); ok {
		switch op {
		case "<":
			return an < bn, nil
		case "<=":
			return an <= bn, nil
		case ">":
			return an > bn, nil
		default:
			return an >= bn, nil
		}
	}

	as, aok := a.Text()
	bs, bok := b.Text()
	if !aok || !bok {
		return false, nil
	}

	switch op {
	case "<":
		return as < bs, nil
	case "<=":
		return as <= bs, nil
	case ">":
		return as > bs, nil
	default:
		return as >= bs, nil
	}
}

func numericPair(a, b porm.Value) (float64, float64, bool) {
	an, aok := asNumber(a)
	bn, bok := asNumber(b)
	return an, bn, aok && bok
}

func asNumber(v porm.Value) (float64, bool) {
	if n, ok := v.Int(); ok {
		return float64(n), true
	}

	return v.Float()
}
