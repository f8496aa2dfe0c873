// Package config implements the brb configuration model: loading the YAML
// config document, interpolating ${env:NAME} placeholders, and validating the
// closed channel schema. Validation is all-or-nothing; a partially valid
// config is never returned.
package config

// Channel type tags. The set is closed: a definition with any other type tag
// fails validation.
const (
	TypeDesktop = "desktop"
	TypeWebhook = "webhook"
	TypeCustom  = "custom"
)

// DefaultHTTPMethod is used by webhook channels that omit `method`.
const DefaultHTTPMethod = "POST"

// Config is the top-level configuration document. It is immutable after Load.
type Config struct {
	// Config schema version; only version 1 is supported.
	Version int `yaml:"version" validate:"eq=1"`

	// Channel IDs used when --channel is omitted.
	DefaultChannels []string `yaml:"default_channels" validate:"min=1,dive,required"`

	// Channel definitions keyed by channel ID. IDs are case-sensitive.
	Channels map[string]Channel `yaml:"channels" validate:"min=1"`
}

// Channel is a single channel definition, discriminated by Type. Exactly one
// of the variant pointers is set.
type Channel struct {
	Type    string
	Desktop *DesktopChannel
	Webhook *WebhookChannel
	Custom  *CustomChannel
}

// DesktopChannel configures `type: desktop`. It carries no fields.
type DesktopChannel struct{}

// WebhookChannel configures `type: webhook`.
type WebhookChannel struct {
	// Target URL for webhook delivery.
	URL string `koanf:"url" yaml:"url" validate:"required"`

	// HTTP method (defaults to POST).
	Method string `koanf:"method" yaml:"method,omitempty"`

	// Optional HTTP headers.
	Headers map[string]string `koanf:"headers" yaml:"headers,omitempty"`
}

// CustomChannel configures `type: custom`.
type CustomChannel struct {
	// Executable name or path. Resolved via PATH for bare names.
	Exec string `koanf:"exec" yaml:"exec" validate:"required"`

	// Optional command-line arguments.
	Args []string `koanf:"args" yaml:"args,omitempty"`

	// Optional environment overrides applied on top of the inherited
	// process environment.
	Env map[string]string `koanf:"env" yaml:"env,omitempty"`
}

// LoadedConfig is a fully validated config plus where it came from.
type LoadedConfig struct {
	// Absolute file path used for loading.
	Path string

	// Parsed and validated config.
	Config Config
}

// MarshalYAML flattens the variant into a single mapping with the type tag,
// matching the on-disk document shape. Used by `brb config show` and the
// round-trip tests.
func (c Channel) MarshalYAML() (any, error) {
	switch c.Type {
	case TypeDesktop:
		return struct {
			Type string `yaml:"type"`
		}{Type: c.Type}, nil
	case TypeWebhook:
		return struct {
			Type           string `yaml:"type"`
			WebhookChannel `yaml:",inline"`
		}{Type: c.Type, WebhookChannel: *c.Webhook}, nil
	case TypeCustom:
		return struct {
			Type          string `yaml:"type"`
			CustomChannel `yaml:",inline"`
		}{Type: c.Type, CustomChannel: *c.Custom}, nil
	default:
		return nil, &SchemaError{Field: "type", Message: "unknown channel type " + c.Type}
	}
}
