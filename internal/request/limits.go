package request

import (
	"fmt"

	"github.com/blkpark/postgrest/internal/config"
	"github.com/blkpark/postgrest/internal/query"
)

// DefaultListLimit replaces an unbounded range when no default limit is
// configured.
const DefaultListLimit = 100

// Limits defines cost limits applied while building a request tree.
type Limits struct {
	// MaxEmbedDepth bounds embedding nesting, root included. Zero means
	// unlimited.
	MaxEmbedDepth int
	// MaxRows caps every node's pagination window. Zero means uncapped.
	MaxRows int
	// DefaultLimit replaces an unbounded range before MaxRows applies.
	// Zero falls back to DefaultListLimit.
	DefaultLimit int
}

// LimitsFromConfig maps the runtime configuration onto build limits.
func LimitsFromConfig(cfg *config.Config) Limits {
	return Limits{
		MaxEmbedDepth: cfg.MaxEmbedDepth,
		MaxRows:       cfg.MaxRows,
		DefaultLimit:  cfg.DefaultLimit,
	}
}

func validateDepth(depth int, limits *Limits) error {
	if limits == nil || limits.MaxEmbedDepth <= 0 {
		return nil
	}
	if depth > limits.MaxEmbedDepth {
		return fmt.Errorf("request exceeds maximum embed depth of %d (depth: %d)", limits.MaxEmbedDepth, depth)
	}
	return nil
}

// clampRange bounds a node's pagination window. An unbounded range first
// receives the default limit, then the row cap applies to the result.
func clampRange(r query.Range, limits *Limits) query.Range {
	if !r.Limited {
		r.Limit = DefaultListLimit
		if limits != nil && limits.DefaultLimit > 0 {
			r.Limit = limits.DefaultLimit
		}
		r.Limited = true
	}
	if limits != nil && limits.MaxRows > 0 && r.Limit > limits.MaxRows {
		r.Limit = limits.MaxRows
	}
	return r
}
