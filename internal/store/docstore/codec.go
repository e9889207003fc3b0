package docstore

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Hash field values are stored as strings: times as RFC3339Nano, bools as
// "1"/"0", slices and maps as JSON. Field names match the snake_case names
// the sql adapter uses, so service-level Update maps work against either.

func encodeValue(value any) (string, error) {
	switch typed := value.(type) {
	case nil:
		return "", nil
	case string:
		return typed, nil
	case bool:
		if typed {
			return "1", nil
		}
		return "0", nil
	case int:
		return strconv.Itoa(typed), nil
	case int64:
		return strconv.FormatInt(typed, 10), nil
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), nil
	case time.Time:
		return typed.UTC().Format(time.RFC3339Nano), nil
	case *time.Time:
		if typed == nil {
			return "", nil
		}
		return typed.UTC().Format(time.RFC3339Nano), nil
	case *int:
		if typed == nil {
			return "", nil
		}
		return strconv.Itoa(*typed), nil
	case *int64:
		if typed == nil {
			return "", nil
		}
		return strconv.FormatInt(*typed, 10), nil
	default:
		raw, err := json.Marshal(typed)
		if err != nil {
			return "", fmt.Errorf("encode hash value: %w", err)
		}
		return string(raw), nil
	}
}

func encodeFields(fields map[string]any) (map[string]any, error) {
	encoded := make(map[string]any, len(fields))
	for name, value := range fields {
		text, err := encodeValue(value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		encoded[name] = text
	}
	return encoded, nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

func parseBool(raw string) bool {
	return raw == "1" || raw == "true"
}

func parseInt(raw string) int {
	value, _ := strconv.Atoi(raw)
	return value
}

func parseInt64(raw string) int64 {
	value, _ := strconv.ParseInt(raw, 10, 64)
	return value
}

func parseFloat(raw string) float64 {
	value, _ := strconv.ParseFloat(raw, 64)
	return value
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	value, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return value
}

func parseTimePtr(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	value := parseTime(raw)
	if value.IsZero() {
		return nil
	}
	return &value
}

func parseIntPtr(raw string) *int {
	if raw == "" {
		return nil
	}
	value := parseInt(raw)
	return &value
}

func parseInt64Ptr(raw string) *int64 {
	if raw == "" {
		return nil
	}
	value := parseInt64(raw)
	return &value
}

func parseStringSlice(raw string) []string {
	if raw == "" {
		return []string{}
	}
	values := make([]string, 0)
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return []string{}
	}
	return values
}

func parseAnyMap(raw string) map[string]any {
	if raw == "" {
		return nil
	}
	values := make(map[string]any)
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	return values
}
