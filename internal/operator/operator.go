// Package operator defines the closed filter-operator vocabulary: a
// bidirectional mapping between wire-format operator names and fixed SQL
// fragments. Only the fragments below ever reach generated SQL, which is
// the injection-safety guarantee of this layer.
package operator

// Operator is one member of the filter-operator vocabulary.
type Operator int

const (
	OpEqual Operator = iota
	OpGreaterThanEqual
	OpGreaterThan
	OpLessThanEqual
	OpLessThan
	OpNotEqual
	OpLike
	OpILike
	OpIs
	OpIsNot
	OpTSearch
	OpContains
	OpContained
	OpIn
	OpNotIn
)

// wireNames maps each operator to its canonical wire-format name.
var wireNames = map[Operator]string{
	OpEqual:            "eq",
	OpGreaterThanEqual: "gte",
	OpGreaterThan:      "gt",
	OpLessThanEqual:    "lte",
	OpLessThan:         "lt",
	OpNotEqual:         "neq",
	OpLike:             "like",
	OpILike:            "ilike",
	OpIs:               "is",
	OpIsNot:            "isnot",
	OpTSearch:          "@@",
	OpContains:         "@>",
	OpContained:        "<@",
	OpIn:               "in",
	OpNotIn:            "notin",
}

var byWireName = func() map[string]Operator {
	m := make(map[string]Operator, len(wireNames))
	for op, name := range wireNames {
		m[name] = op
	}
	return m
}()

// FromWireName parses a wire-format operator name. The second return value
// is false for anything outside the vocabulary; callers must treat that as
// a parse failure, never as a default operator.
func FromWireName(name string) (Operator, bool) {
	op, ok := byWireName[name]
	return op, ok
}

// String returns the canonical wire name of the operator.
func (o Operator) String() string {
	if name, ok := wireNames[o]; ok {
		return name
	}
	return "unknown"
}

// SQLFragment returns the fixed SQL fragment for the operator. The switch
// is exhaustive over the vocabulary; adding an operator without extending
// it is a programming error surfaced by the panic.
func (o Operator) SQLFragment() string {
	switch o {
	case OpEqual:
		return "="
	case OpGreaterThanEqual:
		return ">="
	case OpGreaterThan:
		return ">"
	case OpLessThanEqual:
		return "<="
	case OpLessThan:
		return "<"
	case OpNotEqual:
		return "<>"
	case OpLike:
		return "LIKE"
	case OpILike:
		return "ILIKE"
	case OpIs:
		return "IS"
	case OpIsNot:
		return "IS NOT"
	case OpTSearch:
		return "@@"
	case OpContains:
		return "@>"
	case OpContained:
		return "<@"
	case OpIn:
		return "IN"
	case OpNotIn:
		return "NOT IN"
	default:
		panic("operator: no SQL fragment for " + o.String())
	}
}

// TakesList reports whether the operator compares against a list of values.
func (o Operator) TakesList() bool {
	return o == OpIn || o == OpNotIn
}

// All returns every operator in the vocabulary in a stable order.
func All() []Operator {
	return []Operator{
		OpEqual, OpGreaterThanEqual, OpGreaterThan, OpLessThanEqual, OpLessThan,
		OpNotEqual, OpLike, OpILike, OpIs, OpIsNot,
		OpTSearch, OpContains, OpContained, OpIn, OpNotIn,
	}
}

// WireNames returns every wire-format name in the vocabulary in a stable
// order, for parser help output.
func WireNames() []string {
	ops := All()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = wireNames[op]
	}
	return names
}
