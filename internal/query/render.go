package query

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/blkpark/postgrest/internal/sqlutil"
)

// RenderFilter renders a validated filter into a squirrel expression.
// Only the operator's fixed fragment and quoted catalog identifiers reach
// the SQL text; every user-supplied value is bound as a placeholder.
func RenderFilter(qualifier string, f Filter) (sq.Sqlizer, error) {
	lhs, lhsArgs := fieldExpr(qualifier, f.Field)
	fragment := f.Operation.Operator.SQLFragment()

	var expr sq.Sqlizer
	switch f.Operation.Operand.Kind {
	case OperandValue:
		if f.Operation.Operator.TakesList() {
			return nil, fmt.Errorf("operator %s requires a value list", f.Operation.Operator)
		}
		expr = sq.Expr(lhs+" "+fragment+" ?", append(lhsArgs, f.Operation.Operand.Value)...)

	case OperandValueList:
		if !f.Operation.Operator.TakesList() {
			return nil, fmt.Errorf("operator %s takes a single value, not a list", f.Operation.Operator)
		}
		values := f.Operation.Operand.Values
		if len(values) == 0 {
			return nil, fmt.Errorf("operator %s requires at least one value", f.Operation.Operator)
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(values)), ",")
		args := lhsArgs
		for _, v := range values {
			args = append(args, v)
		}
		expr = sq.Expr(lhs+" "+fragment+" ("+placeholders+")", args...)

	case OperandColumnRef:
		ref := f.Operation.Operand.Ref
		if ref == nil {
			return nil, fmt.Errorf("column reference operand is missing its target")
		}
		rhs := sqlutil.QuoteQualified(ref.Table.Name, ref.ForeignKey.Column.Name)
		expr = sq.Expr(lhs+" "+fragment+" "+rhs, lhsArgs...)

	default:
		return nil, fmt.Errorf("unhandled operand kind %d", f.Operation.Operand.Kind)
	}

	if f.Operation.Negate {
		expr = sq.Expr("NOT (?)", expr)
	}
	return expr, nil
}

// RenderFilters conjoins a filter list into one condition, or nil when the
// list is empty.
func RenderFilters(qualifier string, filters []Filter) (sq.Sqlizer, error) {
	if len(filters) == 0 {
		return nil, nil
	}
	conditions := make(sq.And, 0, len(filters))
	for _, f := range filters {
		cond, err := RenderFilter(qualifier, f)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, cond)
	}
	return conditions, nil
}

// fieldExpr builds the left-hand column expression, drilling into JSON
// paths with bound key placeholders. The final path step extracts text.
func fieldExpr(qualifier string, f Field) (string, []interface{}) {
	expr := sqlutil.QuoteQualified(qualifier, f.Name)
	var args []interface{}
	for i, key := range f.JSONPath {
		if i == len(f.JSONPath)-1 {
			expr += "->>?"
		} else {
			expr += "->?"
		}
		args = append(args, key)
	}
	return expr, args
}

// SQL returns the fixed ordering fragment, empty for the engine default.
func (d Direction) SQL() string {
	switch d {
	case DirectionDefault:
		return ""
	case Ascending:
		return "ASC"
	case Descending:
		return "DESC"
	default:
		return ""
	}
}

// SQL returns the fixed null-ordering fragment, empty for the engine
// default.
func (n NullOrder) SQL() string {
	switch n {
	case NullOrderDefault:
		return ""
	case NullsFirst:
		return "NULLS FIRST"
	case NullsLast:
		return "NULLS LAST"
	default:
		return ""
	}
}
