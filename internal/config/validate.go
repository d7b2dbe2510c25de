package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult contains the results of configuration validation.
type ValidationResult struct {
	Errors []ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Error returns a combined error message if there are validation errors.
func (r *ValidationResult) Error() string {
	if !r.HasErrors() {
		return ""
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration and collects every error.
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{}
	addError := func(field, message string) {
		result.Errors = append(result.Errors, ValidationError{Field: field, Message: message})
	}

	if c.Schema == "" {
		addError("schema", "schema name must not be empty")
	}
	if c.MaxRows < 0 {
		addError("max_rows", fmt.Sprintf("must be non-negative, got %d", c.MaxRows))
	}
	if c.DefaultLimit <= 0 {
		addError("default_limit", fmt.Sprintf("must be positive, got %d", c.DefaultLimit))
	}
	if c.MaxEmbedDepth < 0 {
		addError("max_embed_depth", fmt.Sprintf("must be non-negative, got %d", c.MaxEmbedDepth))
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		addError("log.level", fmt.Sprintf("must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		addError("log.format", fmt.Sprintf("must be json or text, got %q", c.Log.Format))
	}

	return result
}
