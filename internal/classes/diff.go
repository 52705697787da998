package classes

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"course-admin-go/internal/table"
)

// Values is a table row as posted by the edit gestures: field name to the
// raw JSON value the widget produced.
type Values map[string]interface{}

var (
	ErrMissingField = errors.New("missing field")
	ErrInvalidField = errors.New("invalid field")
)

var editableFields = table.EditableFields(Columns)

// Diff returns the update patch for an edited row: the editable fields whose
// value changed, coerced to the shapes the API expects, plus the row id.
func Diff(newData, oldData Values, location *time.Location) (map[string]interface{}, error) {
	patch := make(map[string]interface{})

	for field, value := range newData {
		if !editableFields[field] {
			continue
		}
		if old, ok := oldData[field]; ok && reflect.DeepEqual(old, value) {
			continue
		}

		coerced, err := coerce(field, value, location)
		if err != nil {
			return nil, err
		}
		patch[field] = coerced
	}

	id := rowID(newData)
	if id == "" {
		id = rowID(oldData)
	}
	if id == "" {
		return nil, fmt.Errorf("%w: id", ErrMissingField)
	}
	patch["id"] = id

	return patch, nil
}

func coerce(field string, value interface{}, location *time.Location) (interface{}, error) {
	switch field {
	case "vacancies":
		return Vacancies(value)
	case "time":
		return Clock(value, location)
	}
	return value, nil
}

// Vacancies parses the number of vacancies typed into the table. Fractions
// are truncated.
func Vacancies(value interface{}) (int, error) {
	switch v := value.(type) {
	case nil:
		return 0, fmt.Errorf("%w: vacancies", ErrMissingField)
	case int:
		return checkVacancies(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= math.MinInt || v >= math.MaxInt {
			return 0, fmt.Errorf("%w: vacancies %v", ErrInvalidField, v)
		}
		return checkVacancies(int(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, fmt.Errorf("%w: vacancies", ErrMissingField)
		}
		n, err := strconv.Atoi(leadingInteger(s))
		if err != nil {
			return 0, fmt.Errorf("%w: vacancies %q", ErrInvalidField, v)
		}
		return checkVacancies(n)
	}
	return 0, fmt.Errorf("%w: vacancies %v", ErrInvalidField, value)
}

// leadingInteger cuts s after its leading signed run of digits, so "12.9"
// and "1e3" read as 12 and 1.
func leadingInteger(s string) string {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}

func checkVacancies(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: vacancies %d", ErrInvalidField, n)
	}
	return n, nil
}

// Clock renders a class time as "H:M" without zero padding, the format the
// API stores. It accepts a full timestamp, read in location, or a wall clock
// string.
func Clock(value interface{}, location *time.Location) (string, error) {
	if location == nil {
		location = time.Local
	}

	switch v := value.(type) {
	case nil:
		return "", fmt.Errorf("%w: time", ErrMissingField)
	case time.Time:
		t := v.In(location)
		return fmt.Sprintf("%d:%d", t.Hour(), t.Minute()), nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return "", fmt.Errorf("%w: time", ErrMissingField)
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			t = t.In(location)
			return fmt.Sprintf("%d:%d", t.Hour(), t.Minute()), nil
		}
		return wallClock(s)
	}
	return "", fmt.Errorf("%w: time %v", ErrInvalidField, value)
}

func wallClock(s string) (string, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", fmt.Errorf("%w: time %q", ErrInvalidField, s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return "", fmt.Errorf("%w: time %q", ErrInvalidField, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return "", fmt.Errorf("%w: time %q", ErrInvalidField, s)
	}

	return fmt.Sprintf("%d:%d", h, m), nil
}

func rowID(v Values) string {
	switch id := v["id"].(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return fmt.Sprint(id)
	}
}
