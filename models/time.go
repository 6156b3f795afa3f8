package models

import (
	"fmt"
	"strings"
	"time"
)

// apiTimeLayout is the timestamp format the backend emits and accepts.
const apiTimeLayout = "2006-01-02T15:04:05"

// apiTimeFallbacks are additional layouts observed in backend responses.
var apiTimeFallbacks = []string{
	time.RFC3339,
	"2006-01-02",
}

// APITime wraps time.Time with the backend's JSON timestamp encoding.
type APITime struct {
	time.Time
}

// NewAPITime builds an APITime from a time.Time.
func NewAPITime(t time.Time) APITime {
	return APITime{Time: t}
}

func (t APITime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(apiTimeLayout) + `"`), nil
}

func (t *APITime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := parseAPITime(s)
	if err != nil {
		return err
	}

	t.Time = parsed
	return nil
}

func parseAPITime(s string) (time.Time, error) {
	if parsed, err := time.Parse(apiTimeLayout, s); err == nil {
		return parsed, nil
	}
	for _, layout := range apiTimeFallbacks {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
