package steps

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

func (t *TestContext) theResponseStatusShouldBe(expected int) error {
	if t.response == nil {
		return fmt.Errorf("no response recorded, send a request first")
	}
	if t.response.StatusCode != expected {
		return fmt.Errorf("expected status %d, got %d with body: %s",
			expected, t.response.StatusCode, string(t.responseBody))
	}
	return nil
}

func (t *TestContext) theResponseFieldShouldBe(field, expected string) error {
	value, err := t.lookupField(field)
	if err != nil {
		return err
	}

	want := t.replacePlaceholders(expected)
	got := formatJSONValue(value)
	if got != want {
		return fmt.Errorf("expected field %q to be %q, got %q", field, want, got)
	}
	return nil
}

func (t *TestContext) theResponseFieldShouldExist(field string) error {
	_, err := t.lookupField(field)
	return err
}

func (t *TestContext) theResponseFieldShouldHaveItems(field string, expected int) error {
	value, err := t.lookupField(field)
	if err != nil {
		return err
	}

	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field %q is not an array: %v", field, value)
	}
	if len(items) != expected {
		return fmt.Errorf("expected field %q to have %d items, got %d", field, expected, len(items))
	}
	return nil
}

func (t *TestContext) theDatabaseShouldHaveRows(expected int, table string) error {
	count, err := t.db.Count(table)
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d rows in %s, got %d", expected, table, count)
	}
	return nil
}

func (t *TestContext) theRateSourceShouldHaveBeenFetched(expected int) error {
	if got := t.rates.Fetches(); got != expected {
		return fmt.Errorf("expected %d rate source fetches, got %d", expected, got)
	}
	return nil
}

// lookupField walks a dot-separated path through the JSON response
// body; numeric segments index arrays, as in "accounts.0.balance".
func (t *TestContext) lookupField(path string) (any, error) {
	if t.responseBody == nil {
		return nil, fmt.Errorf("no response recorded, send a request first")
	}

	var document any
	if err := json.Unmarshal(t.responseBody, &document); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %s", string(t.responseBody))
	}

	current := document
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field %q not found in response: %s", path, string(t.responseBody))
			}
			current = value
		case []any:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("field %q not found in response: %s", path, string(t.responseBody))
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field %q not found in response: %s", path, string(t.responseBody))
		}
	}
	return current, nil
}

// formatJSONValue renders a decoded JSON value the way scenarios write
// expectations: numbers without a trailing ".0", null as "null".
func formatJSONValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		raw, _ := json.Marshal(v)
		return string(raw)
	}
}
