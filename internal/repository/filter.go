package repository

import (
	"fmt"
	"strings"
)

// Op is a comparison operator usable in a Filter.
type Op int

const (
	OpEq Op = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpIsNull
	OpNotNull
)

var opSQL = map[Op]string{
	OpEq:      "=",
	OpNe:      "<>",
	OpLt:      "<",
	OpLe:      "<=",
	OpGt:      ">",
	OpGe:      ">=",
	OpIsNull:  "IS NULL",
	OpNotNull: "IS NOT NULL",
}

// Condition compares one column against a value.
type Condition struct {
	Column string
	Op     Op
	Value  any
}

// Filter is a conjunction of conditions. The zero value matches every row.
type Filter []Condition

// Where builds a Filter from conditions.
func Where(conds ...Condition) Filter {
	return Filter(conds)
}

func Eq(column string, value any) Condition { return Condition{Column: column, Op: OpEq, Value: value} }
func Ne(column string, value any) Condition { return Condition{Column: column, Op: OpNe, Value: value} }
func Lt(column string, value any) Condition { return Condition{Column: column, Op: OpLt, Value: value} }
func Le(column string, value any) Condition { return Condition{Column: column, Op: OpLe, Value: value} }
func Gt(column string, value any) Condition { return Condition{Column: column, Op: OpGt, Value: value} }
func Ge(column string, value any) Condition { return Condition{Column: column, Op: OpGe, Value: value} }
func IsNull(column string) Condition        { return Condition{Column: column, Op: OpIsNull} }
func NotNull(column string) Condition       { return Condition{Column: column, Op: OpNotNull} }

// And returns a new filter with extra conditions appended.
func (f Filter) And(conds ...Condition) Filter {
	out := make(Filter, 0, len(f)+len(conds))
	out = append(out, f...)
	return append(out, conds...)
}

// build renders the filter as a WHERE clause whose placeholders start at
// $argOffset+1. Columns must be present in allowed.
func (f Filter) build(allowed map[string]struct{}, argOffset int) (string, []any, error) {
	if len(f) == 0 {
		return "", nil, nil
	}

	parts := make([]string, 0, len(f))
	args := make([]any, 0, len(f))
	for _, c := range f {
		if _, ok := allowed[c.Column]; !ok {
			return "", nil, fmt.Errorf("%w: unknown column %q", ErrInvalidFilter, c.Column)
		}
		op, ok := opSQL[c.Op]
		if !ok {
			return "", nil, fmt.Errorf("%w: unknown operator %d", ErrInvalidFilter, c.Op)
		}

		switch c.Op {
		case OpIsNull, OpNotNull:
			parts = append(parts, fmt.Sprintf("%s %s", c.Column, op))
		default:
			if c.Value == nil {
				return "", nil, fmt.Errorf("%w: nil value for %q, use IsNull", ErrInvalidFilter, c.Column)
			}
			args = append(args, c.Value)
			parts = append(parts, fmt.Sprintf("%s %s $%d", c.Column, op, argOffset+len(args)))
		}
	}
	return " WHERE " + strings.Join(parts, " AND "), args, nil
}

// Order is one ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

func buildOrder(orders []Order, allowed map[string]struct{}) (string, error) {
	if len(orders) == 0 {
		return " ORDER BY id", nil
	}
	parts := make([]string, 0, len(orders))
	for _, o := range orders {
		if _, ok := allowed[o.Column]; !ok {
			return "", fmt.Errorf("%w: unknown order column %q", ErrInvalidFilter, o.Column)
		}
		if o.Desc {
			parts = append(parts, o.Column+" DESC")
		} else {
			parts = append(parts, o.Column+" ASC")
		}
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

// Page is an offset window.
type Page struct {
	Skip  int
	Limit int
}

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

// normalized clamps the page to sane bounds.
func (p Page) normalized() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultPageLimit
	case p.Limit > MaxPageLimit:
		p.Limit = MaxPageLimit
	}
	return p
}
