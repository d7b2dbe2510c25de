package request

import "fmt"

// UnknownRelationError reports an embed target that is absent from the
// catalog entirely.
type UnknownRelationError struct {
	Name string
}

func (e *UnknownRelationError) Error() string {
	return fmt.Sprintf("could not find table %q in the catalog", e.Name)
}

// NoRelationBetweenError reports two known tables with no foreign-key or
// link path connecting them.
type NoRelationBetweenError struct {
	Subject string
	Target  string
}

func (e *NoRelationBetweenError) Error() string {
	return fmt.Sprintf("no relation between %q and %q", e.Subject, e.Target)
}

// AmbiguousRelationError reports more than one candidate relation between
// two tables with no disambiguating hint.
type AmbiguousRelationError struct {
	Subject    string
	Target     string
	Candidates int
}

func (e *AmbiguousRelationError) Error() string {
	return fmt.Sprintf("%d candidate relations between %q and %q, a disambiguating hint is required",
		e.Candidates, e.Subject, e.Target)
}

// DuplicateEmbedError reports sibling embeds that would produce an
// ambiguous result shape.
type DuplicateEmbedError struct {
	Parent string
	Target string
}

func (e *DuplicateEmbedError) Error() string {
	return fmt.Sprintf("%q is embedded under %q more than once without distinct aliases", e.Target, e.Parent)
}
