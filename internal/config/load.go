package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

var validate = validator.New()

// rootDoc is the untyped shape of the document. Channel definitions stay raw
// so interpolation and per-variant decoding can run against the parsed tree.
type rootDoc struct {
	Version         int                       `koanf:"version"`
	DefaultChannels []string                  `koanf:"default_channels"`
	Channels        map[string]map[string]any `koanf:"channels"`
}

// Load reads, interpolates, and validates the config file at path.
func Load(path string) (*LoadedConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'brb init' to create it)", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
		return nil, newParseError(path, err)
	}

	cfg, err := fromTree(k.Raw())
	if err != nil {
		return nil, err
	}
	return &LoadedConfig{Path: path, Config: *cfg}, nil
}

// Parse loads a config document from raw bytes. Used by tests and by any
// caller that manages the file location itself.
func Parse(data []byte) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), kyaml.Parser()); err != nil {
		return nil, newParseError("", err)
	}
	return fromTree(k.Raw())
}

// fromTree turns the parsed document into a validated Config. Interpolation
// runs over the raw tree before typed decoding so every string field of every
// channel definition gets identical treatment.
func fromTree(raw map[string]any) (*Config, error) {
	if channels, ok := raw["channels"].(map[string]any); ok {
		for id, value := range channels {
			def, ok := value.(map[string]any)
			if !ok {
				return nil, &SchemaError{Field: "channels." + id, Message: "channel definition must be a mapping"}
			}
			if err := interpolateChannel(id, def); err != nil {
				return nil, err
			}
		}
	}

	var doc rootDoc
	if err := decodeStrict(raw, &doc); err != nil {
		return nil, schemaErrorFromDecode("", err)
	}

	cfg := &Config{
		Version:         doc.Version,
		DefaultChannels: doc.DefaultChannels,
		Channels:        make(map[string]Channel, len(doc.Channels)),
	}
	for id, def := range doc.Channels {
		ch, err := decodeChannel(id, def)
		if err != nil {
			return nil, err
		}
		cfg.Channels[id] = ch
	}

	if err := validateSchema(cfg); err != nil {
		return nil, err
	}

	// Referential integrity last: every default must name a defined channel.
	for _, id := range cfg.DefaultChannels {
		if _, ok := cfg.Channels[id]; !ok {
			return nil, &UnknownChannelError{ID: id}
		}
	}

	return cfg, nil
}

// decodeChannel decodes one raw channel definition into its typed variant,
// keyed by the type tag. Unknown fields are rejected (closed schema).
func decodeChannel(id string, def map[string]any) (Channel, error) {
	typ, ok := def["type"].(string)
	if !ok || typ == "" {
		return Channel{}, &SchemaError{Field: "channels." + id + ".type", Message: "is required"}
	}

	fields := make(map[string]any, len(def))
	for key, value := range def {
		if key == "type" {
			continue
		}
		fields[key] = value
	}

	switch typ {
	case TypeDesktop:
		var dc DesktopChannel
		if err := decodeStrict(fields, &dc); err != nil {
			return Channel{}, schemaErrorFromDecode("channels."+id, err)
		}
		return Channel{Type: typ, Desktop: &dc}, nil
	case TypeWebhook:
		var wc WebhookChannel
		if err := decodeStrict(fields, &wc); err != nil {
			return Channel{}, schemaErrorFromDecode("channels."+id, err)
		}
		if wc.Method == "" {
			wc.Method = DefaultHTTPMethod
		}
		return Channel{Type: typ, Webhook: &wc}, nil
	case TypeCustom:
		var cc CustomChannel
		if err := decodeStrict(fields, &cc); err != nil {
			return Channel{}, schemaErrorFromDecode("channels."+id, err)
		}
		return Channel{Type: typ, Custom: &cc}, nil
	default:
		return Channel{}, &SchemaError{
			Field:   "channels." + id + ".type",
			Message: fmt.Sprintf("unknown channel type %q (expected desktop, webhook, or custom)", typ),
		}
	}
}

// decodeStrict decodes a raw map into a struct, rejecting unknown fields.
func decodeStrict(input, result any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "koanf",
		Result:      result,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// validateSchema enforces struct-level constraints: version, non-empty
// default_channels and channels, and per-variant required fields. Channels
// are checked in sorted ID order so the first reported error is stable.
func validateSchema(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return rootSchemaError(verrs[0])
		}
		return &SchemaError{Message: err.Error()}
	}

	ids := make([]string, 0, len(cfg.Channels))
	for id := range cfg.Channels {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		ch := cfg.Channels[id]
		var target any
		switch ch.Type {
		case TypeWebhook:
			target = ch.Webhook
		case TypeCustom:
			target = ch.Custom
		default:
			continue
		}
		if err := validate.Struct(target); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				field := strings.ToLower(verrs[0].StructField())
				return &SchemaError{Field: "channels." + id + "." + field, Message: "is required"}
			}
			return &SchemaError{Field: "channels." + id, Message: err.Error()}
		}
	}

	return nil
}

func rootSchemaError(fe validator.FieldError) *SchemaError {
	switch fe.StructField() {
	case "Version":
		return &SchemaError{Field: "version", Message: fmt.Sprintf("unsupported version %v; expected 1", fe.Value())}
	case "DefaultChannels":
		return &SchemaError{Field: "default_channels", Message: "must include at least one channel id"}
	case "Channels":
		return &SchemaError{Field: "channels", Message: "at least one channel must be configured"}
	default:
		return &SchemaError{Field: strings.ToLower(fe.StructField()), Message: fe.Tag()}
	}
}

var yamlLineRe = regexp.MustCompile(`line (\d+)(?::(\d+))?`)

// newParseError extracts line/column information from a yaml.v3 error string,
// which has no structured position API.
func newParseError(path string, err error) *ParseError {
	msg := err.Error()
	pe := &ParseError{Path: path, Message: strings.TrimPrefix(msg, "yaml: ")}
	if m := yamlLineRe.FindStringSubmatch(msg); m != nil {
		pe.Line, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			pe.Column, _ = strconv.Atoi(m[2])
		}
	}
	return pe
}

// schemaErrorFromDecode flattens a mapstructure multi-error into one message.
func schemaErrorFromDecode(prefix string, err error) *SchemaError {
	var parts []string
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "* "))
		if line == "" || strings.HasSuffix(line, "error(s) decoding:") {
			continue
		}
		parts = append(parts, line)
	}
	return &SchemaError{Field: prefix, Message: strings.Join(parts, "; ")}
}
