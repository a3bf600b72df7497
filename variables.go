package solarroi

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// VariableMap holds the model variables of a project, keyed by variable id.
//
// Values are numbers (any Go numeric kind), strings or booleans. The map is open:
// keys unknown to the calculator are kept and ignored.
type VariableMap map[string]any

// Clone returns a shallow copy of v. A nil map clones to nil.
func (v VariableMap) Clone() VariableMap {
	if v == nil {
		return nil
	}
	return maps.Clone(v)
}

// GetNumber resolves 'key' as a number.
//
// Go numeric values are returned as is (converted to float64). Strings are
// parsed as decimal numbers and blank strings are 0; a string that does not
// parse to a finite number resolves to fallback, as does a missing key or a
// value of any other type.
func GetNumber(vars VariableMap, key string, fallback float64) float64 {
	if n, ok := Number(vars[key]); ok {
		return n
	}
	return fallback
}

// Number is the numeric reading of a variable value, with the rules of GetNumber.
func Number(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		return parseDecimal(string(v))
	case string:
		// blank text reads as 0, the way a cleared number field does.
		if strings.TrimSpace(v) == "" {
			return 0, true
		}
		return parseDecimal(v)
	default:
		return 0, false
	}
}

// GetBoolean resolves 'key' as a boolean.
//
// Booleans are returned as is. A string is true only when its lower case form
// is exactly "true": "1", "yes" or "TRUE " are all false. Anything else
// resolves to fallback.
func GetBoolean(vars VariableMap, key string, fallback bool) bool {
	switch v := vars[key].(type) {
	case bool:
		return v
	case string:
		return strings.ToLower(v) == "true"
	default:
		return fallback
	}
}

func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseValue converts a raw text value, typically typed on the command line,
// into the most specific variable value: a bool for "true"/"false", a float64
// when it parses as a finite number, the text itself otherwise.
func ParseValue(s string) any {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true
	case "false":
		return false
	}
	if f, ok := parseDecimal(s); ok {
		return f
	}
	return s
}

// ParseAssignments parses a list of "key=value" pairs into a VariableMap.
func ParseAssignments(args []string) (VariableMap, error) {
	vars := make(VariableMap, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q, expected key=value", arg)
		}
		vars[key] = ParseValue(value)
	}
	return vars, nil
}

// ReadVariables reads a VariableMap from a JSON or YAML file. The format is
// picked from the file extension, YAML being the default for anything that is
// not ".json".
func ReadVariables(filename string) (VariableMap, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot read variables file: %w", err)
	}
	return DecodeVariables(data, strings.ToLower(filepath.Ext(filename)) == ".json")
}

// DecodeVariables decodes a JSON (isJSON) or YAML document into a VariableMap.
// Nested values are rejected: a variable is a scalar.
func DecodeVariables(data []byte, isJSON bool) (VariableMap, error) {
	vars := make(VariableMap)
	if isJSON {
		if err := json.Unmarshal(data, &vars); err != nil {
			return nil, fmt.Errorf("invalid JSON variables: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &vars); err != nil {
			return nil, fmt.Errorf("invalid YAML variables: %w", err)
		}
	}
	for key, value := range vars {
		switch value.(type) {
		case string, bool, float64, int, int64, uint64:
		case nil:
			delete(vars, key)
		default:
			return nil, fmt.Errorf("variable %q: unsupported value type %T", key, value)
		}
	}
	return vars, nil
}
