package catalog

// TypeKind classifies a procedure return type.
type TypeKind int

const (
	// Scalar is a plain scalar return type.
	Scalar TypeKind = iota
	// Composite is a row type (e.g. a table type).
	Composite
	// Pseudo is a pseudo-type such as record or trigger.
	Pseudo
)

// String returns a human-readable representation of the type kind.
func (k TypeKind) String() string {
	switch k {
	case Scalar:
		return "Scalar"
	case Composite:
		return "Composite"
	case Pseudo:
		return "Pseudo"
	default:
		return "Unknown"
	}
}

// Volatility is the declared volatility class of a procedure. It governs
// whether the procedure may be called via read-only HTTP verbs.
type Volatility int

const (
	Volatile Volatility = iota
	Stable
	Immutable
)

// String returns a human-readable representation of the volatility class.
func (v Volatility) String() string {
	switch v {
	case Volatile:
		return "Volatile"
	case Stable:
		return "Stable"
	case Immutable:
		return "Immutable"
	default:
		return "Unknown"
	}
}

// ProcArg is one declared argument of a stored procedure.
type ProcArg struct {
	Name     string
	Type     string
	Required bool
}

// ProcReturn describes what a procedure returns: a single value or a set,
// of a scalar, composite, or pseudo type.
type ProcReturn struct {
	SetOf bool
	Kind  TypeKind
	Type  string
}

// ProcDescription is a stored-procedure signature.
type ProcDescription struct {
	Name       string
	Args       []ProcArg
	Returns    ProcReturn
	Volatility Volatility
}

// ReadOnly reports whether the procedure may be invoked through read-only
// verbs. Only stable and immutable procedures qualify.
func (p ProcDescription) ReadOnly() bool {
	switch p.Volatility {
	case Stable, Immutable:
		return true
	case Volatile:
		return false
	default:
		return false
	}
}
