package lookup

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// jsonpath helpers shared by the quote parser and the rate fetcher.
// Remote JSON is loosely typed: numbers show up as strings, single
// answers as one-element lists. These helpers absorb that.

// decodeObject parses raw JSON into the loosely-typed form jsonpath
// operates on.
func decodeObject(raw string) (any, error) {
	var obj any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return obj, nil
}

// jsonGet evaluates a jsonpath expression, unwrapping a one-element
// list into its single answer.
func jsonGet(obj any, path string) (any, error) {
	jval, err := jsonpath.Get(path, obj)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return jval, nil
}

// jsonFloat reads a float at path, tolerating numbers encoded as
// strings with comma separators.
func jsonFloat(obj any, path string) (float64, error) {
	jval, err := jsonGet(obj, path)
	if err != nil {
		return 0, err
	}
	switch v := jval.(type) {
	case float64:
		return v, nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number at %q: %w", v, path, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("value at %q is not a number: %v", path, jval)
	}
}

// jsonString reads a string at path.
func jsonString(obj any, path string) (string, error) {
	jval, err := jsonGet(obj, path)
	if err != nil {
		return "", err
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("value at %q is not a string: %v", path, jval)
	}
	return s, nil
}

// jsonStrings reads a list of strings at path, skipping non-string
// entries.
func jsonStrings(obj any, path string) ([]string, error) {
	jval, err := jsonpath.Get(path, obj)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate %q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("value at %q is not a list: %v", path, jval)
	}
	var out []string
	for _, item := range jlist {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
