// Package query defines the typed query trees handed to SQL generation:
// read and mutate queries, filters, ordering, pagination ranges, and the
// nested read-request tree produced by embed resolution.
package query

import (
	"fmt"

	"github.com/blkpark/postgrest/internal/catalog"
	"github.com/blkpark/postgrest/internal/operator"
)

// Field names a column, optionally drilling into a semi-structured value
// with a JSON path.
type Field struct {
	Name     string
	JSONPath []string
}

// SelectItem is one requested output column with optional cast and alias.
type SelectItem struct {
	Field Field
	Cast  string
	Alias string
}

// OperandKind tags the Operand union.
type OperandKind int

const (
	// OperandValue is a single text literal.
	OperandValue OperandKind = iota
	// OperandValueList is a list of text literals, for set-membership
	// operators.
	OperandValueList
	// OperandColumnRef references another table's column instead of a
	// literal.
	OperandColumnRef
)

// ColumnRef points a filter at another table's column: the target table
// plus the foreign key linking to it.
type ColumnRef struct {
	Table      catalog.Table
	ForeignKey catalog.ForeignKey
}

// Operand is the right-hand side of a filter comparison.
type Operand struct {
	Kind   OperandKind
	Value  string
	Values []string
	Ref    *ColumnRef
}

// NewValueOperand builds a single-literal operand.
func NewValueOperand(value string) Operand {
	return Operand{Kind: OperandValue, Value: value}
}

// NewValueListOperand builds a list-of-literals operand.
func NewValueListOperand(values []string) Operand {
	return Operand{Kind: OperandValueList, Values: values}
}

// NewColumnRefOperand builds a cross-table reference operand.
func NewColumnRefOperand(ref ColumnRef) Operand {
	return Operand{Kind: OperandColumnRef, Ref: &ref}
}

// Operation pairs an operator and operand with a negation flag.
type Operation struct {
	Negate   bool
	Operator operator.Operator
	Operand  Operand
}

// Filter applies an operation to a field.
type Filter struct {
	Field     Field
	Operation Operation
}

// Direction orders a term ascending or descending. The zero value means
// "use the engine default", not "apply none".
type Direction int

const (
	DirectionDefault Direction = iota
	Ascending
	Descending
)

// NullOrder places nulls first or last. The zero value defers to the
// engine default.
type NullOrder int

const (
	NullOrderDefault NullOrder = iota
	NullsFirst
	NullsLast
)

// OrderTerm is one ordering term of a read query.
type OrderTerm struct {
	Field     Field
	Direction Direction
	NullOrder NullOrder
}

// Range is a non-negative pagination window.
type Range struct {
	Offset  int
	Limit   int
	Limited bool
}

// NewRange builds an unbounded range starting at offset.
func NewRange(offset int) (Range, error) {
	if offset < 0 {
		return Range{}, fmt.Errorf("range offset must be non-negative, got %d", offset)
	}
	return Range{Offset: offset}, nil
}

// NewLimitedRange builds a bounded range.
func NewLimitedRange(offset, limit int) (Range, error) {
	if offset < 0 {
		return Range{}, fmt.Errorf("range offset must be non-negative, got %d", offset)
	}
	if limit < 0 {
		return Range{}, fmt.Errorf("range limit must be non-negative, got %d", limit)
	}
	return Range{Offset: offset, Limit: limit, Limited: true}, nil
}

// ReadQuery is a single select against one table.
type ReadQuery struct {
	Select  []SelectItem
	From    string
	Filters []Filter
	Order   []OrderTerm
	Range   Range
}

// MutateKind tags the MutateQuery union.
type MutateKind int

const (
	Insert MutateKind = iota
	Update
	Delete
)

// String returns a human-readable representation of the mutate kind.
func (k MutateKind) String() string {
	switch k {
	case Insert:
		return "Insert"
	case Update:
		return "Update"
	case Delete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// MutateQuery is a single insert, update, or delete against one table.
// Payload is set for Insert and Update; Filters restrict Update and Delete.
type MutateQuery struct {
	Kind      MutateKind
	Into      string
	Payload   PayloadJSON
	Filters   []Filter
	Returning []Field
}

// ReadNode is one node of a read-request tree: a read query annotated with
// its name, the resolved relation to its parent, and an optional alias.
// Children appear in requested order; downstream rendering preserves it.
type ReadNode struct {
	Query    ReadQuery
	Name     string
	Relation catalog.Relation
	Alias    string
	Children []*ReadNode
}

// ReadRequest is the complete, validated representation of a nested
// resource-embedding request. The root node carries the Root relation.
type ReadRequest struct {
	Root *ReadNode
}

// MutateRequest wraps a single mutate query. Mutations are never nested.
type MutateRequest struct {
	Query MutateQuery
}
