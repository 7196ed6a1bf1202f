// SPDX-License-Identifier: MPL-2.0

// Package envfile reads, appends to, and expands against the solution's
// environment file (.env). The file is a plain sequence of KEY=VALUE lines;
// this tool only ever appends new declarations, it never rewrites existing
// keys.
package envfile

import (
	"fmt"
	"os"
	"strings"
)

// Env is the loaded set of environment values keyed by variable name.
type Env map[string]string

// Load reads and parses an env file. A missing file is not an error; it
// yields an empty Env so callers can treat "no .env yet" and "empty .env"
// identically.
func Load(path string) (Env, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Env{}, nil
		}
		return nil, fmt.Errorf("failed to read env file '%s': %w", path, err)
	}

	env := Env{}
	if err := Parse(env, content, path); err != nil {
		return nil, err
	}
	return env, nil
}

// Parse parses dotenv format content and merges it into the env map.
// Supported format:
//   - Lines starting with # are comments
//   - Empty lines are ignored
//   - KEY=value (unquoted), KEY="value" (escapes: \n, \r, \t, \\, \"),
//     KEY='value' (literal)
//   - export KEY=value (export prefix is optional and ignored)
//   - KEY= (empty value)
//
// The filename parameter is used for error messages.
func Parse(env Env, content []byte, filename string) error {
	lines := strings.Split(string(content), "\n")

	for i, line := range lines {
		lineNum := i + 1

		line = strings.TrimSuffix(line, "\r")
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimPrefix(line, "export ")
		line = strings.TrimSpace(line)

		key, value, found := strings.Cut(line, "=")
		if !found {
			return fmt.Errorf("%s:%d: invalid format (missing '=')", filename, lineNum)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("%s:%d: empty variable name", filename, lineNum)
		}

		parsedValue, err := parseValue(value)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", filename, lineNum, err)
		}

		env[key] = parsedValue
	}

	return nil
}

// Pair is a single KEY=VALUE declaration to append.
type Pair struct {
	Key   string
	Value string
}

// Append appends declarations to the env file, creating it when missing.
// Existing content is never rewritten. A file that does not end in a newline
// gets one before the new declarations so lines never merge.
func Append(path string, pairs []Pair) error {
	if len(pairs) == 0 {
		return nil
	}

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read env file '%s': %w", path, err)
	}

	var b strings.Builder
	if len(existing) > 0 && existing[len(existing)-1] != '\n' {
		b.WriteByte('\n')
	}
	for _, p := range pairs {
		b.WriteString(p.Key)
		b.WriteByte('=')
		b.WriteString(p.Value)
		b.WriteByte('\n')
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open env file '%s': %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to append to env file '%s': %w", path, err)
	}
	return nil
}

// parseValue parses a dotenv value, handling quoting and escape sequences.
func parseValue(value string) (string, error) {
	value = strings.TrimSpace(value)

	if value == "" {
		return "", nil
	}

	if value[0] == '"' {
		if len(value) < 2 || value[len(value)-1] != '"' {
			return "", fmt.Errorf("unterminated double quote")
		}
		return unescape(value[1 : len(value)-1]), nil
	}
	if value[0] == '\'' {
		if len(value) < 2 || value[len(value)-1] != '\'' {
			return "", fmt.Errorf("unterminated single quote")
		}
		// Single-quoted: literal value, no escape processing
		return value[1 : len(value)-1], nil
	}

	// Unquoted: strip inline comments
	if idx := strings.Index(value, " #"); idx != -1 {
		value = strings.TrimSpace(value[:idx])
	}

	return value, nil
}

// unescape processes escape sequences in a double-quoted value.
func unescape(value string) string {
	var result strings.Builder
	result.Grow(len(value))

	i := 0
	for i < len(value) {
		if value[i] == '\\' && i+1 < len(value) {
			next := value[i+1]
			switch next {
			case 'n':
				result.WriteByte('\n')
			case 'r':
				result.WriteByte('\r')
			case 't':
				result.WriteByte('\t')
			case '\\':
				result.WriteByte('\\')
			case '"':
				result.WriteByte('"')
			case '$':
				result.WriteByte('$')
			default:
				// Unknown escape - keep both characters
				result.WriteByte('\\')
				result.WriteByte(next)
			}
			i += 2
		} else {
			result.WriteByte(value[i])
			i++
		}
	}

	return result.String()
}
