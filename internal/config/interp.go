package config

import (
	"os"
	"strings"
)

const interpPrefix = "${env:"

// Interpolate replaces every ${env:NAME} occurrence in s with the value of
// environment variable NAME. A malformed expression (empty or non-identifier
// name, unterminated placeholder) or an unset variable is a hard failure;
// there is no silent empty-string substitution.
func Interpolate(s string) (string, error) {
	var out strings.Builder
	rest := s

	for {
		start := strings.Index(rest, interpPrefix)
		if start < 0 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		placeholder := rest[start+len(interpPrefix):]
		end := strings.IndexByte(placeholder, '}')
		if end < 0 {
			return "", &InterpError{Expr: s}
		}

		name := placeholder[:end]
		if !validEnvName(name) {
			return "", &InterpError{Expr: s}
		}

		value, ok := os.LookupEnv(name)
		if !ok {
			return "", &InterpError{Expr: s, Name: name, Missing: true}
		}

		out.WriteString(value)
		rest = placeholder[end+1:]
	}
}

// validEnvName reports whether name is a non-empty identifier-like token.
func validEnvName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

// interpolateChannel rewrites every string value nested under one channel
// definition. It operates on the raw parsed tree so every current and future
// string field gets identical treatment; map keys and the type tag are never
// interpolated.
func interpolateChannel(channelID string, def map[string]any) error {
	for key, value := range def {
		if key == "type" {
			continue
		}
		rewritten, err := interpolateValue(key, value)
		if err != nil {
			tagInterpError(err, channelID)
			return err
		}
		def[key] = rewritten
	}
	return nil
}

// interpolateValue recursively rewrites string leaves of a raw config value.
func interpolateValue(path string, value any) (any, error) {
	switch v := value.(type) {
	case string:
		out, err := Interpolate(v)
		if err != nil {
			setInterpField(err, path)
			return nil, err
		}
		return out, nil
	case map[string]any:
		for key, item := range v {
			rewritten, err := interpolateValue(path+"."+key, item)
			if err != nil {
				return nil, err
			}
			v[key] = rewritten
		}
		return v, nil
	case []any:
		for i, item := range v {
			rewritten, err := interpolateValue(path, item)
			if err != nil {
				return nil, err
			}
			v[i] = rewritten
		}
		return v, nil
	default:
		return value, nil
	}
}

func setInterpField(err error, field string) {
	if ie, ok := err.(*InterpError); ok && ie.Field == "" {
		ie.Field = field
	}
}

func tagInterpError(err error, channelID string) {
	if ie, ok := err.(*InterpError); ok && ie.ChannelID == "" {
		ie.ChannelID = channelID
	}
}
