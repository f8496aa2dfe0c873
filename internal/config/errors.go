package config

import "fmt"

// ParseError reports a syntactically invalid config document.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid YAML config %s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("invalid YAML config %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("invalid YAML config: %s", e.Message)
}

// SchemaError reports a well-formed document that does not conform to the
// config schema. Field is the dotted path of the offending field.
type SchemaError struct {
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid config: %s", e.Message)
	}
	return fmt.Sprintf("invalid config: field %q: %s", e.Field, e.Message)
}

// InterpError reports a failed ${env:NAME} interpolation. Missing
// distinguishes an unset environment variable from a malformed expression.
type InterpError struct {
	// Owning channel ID and dotted field path, filled in by the load-time
	// tree walk. Empty when interpolating a bare string.
	ChannelID string
	Field     string

	// The value containing the failing expression.
	Expr string

	// Name of the unset environment variable when Missing is true.
	Name    string
	Missing bool
}

func (e *InterpError) Error() string {
	var reason string
	if e.Missing {
		reason = fmt.Sprintf("environment variable %q is not set", e.Name)
	} else {
		reason = fmt.Sprintf("invalid environment interpolation expression in %q", e.Expr)
	}
	if e.ChannelID != "" {
		return fmt.Sprintf("channel %q: field %q: %s", e.ChannelID, e.Field, reason)
	}
	return reason
}

// UnknownChannelError reports a channel ID that is not defined in the config,
// either in default_channels at load time or in an explicit --channel
// selection at dispatch time.
type UnknownChannelError struct {
	ID string
}

func (e *UnknownChannelError) Error() string {
	return fmt.Sprintf("channel %q is not defined in channels", e.ID)
}
