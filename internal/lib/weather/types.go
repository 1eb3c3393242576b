package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Error is a lookup the provider refused, e.g. an unknown zip (404) or an
// invalid API key (401).
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("weather: provider returned %d: %s", e.Code, e.Message)
}

// statusCode decodes the provider "cod" field, which is a number on
// success (200) and a string on failure ("404").
type statusCode int

func (s *statusCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = 0
		return nil
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		if str == "" {
			*s = 0
			return nil
		}
		n, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("invalid cod %q: %w", str, err)
		}
		*s = statusCode(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = statusCode(n)
	return nil
}

// FormatUTCOffset renders a UTC shift in seconds as whole hours:
// "UTC-4" for -14400, "UTC+2" for 7200, "UTC+0" for 0.
//
// Hours are floored, so -12600 (-3.5h) becomes "UTC-4".
func FormatUTCOffset(offsetSeconds int) string {
	hours := offsetSeconds / 3600
	if offsetSeconds%3600 != 0 && offsetSeconds < 0 {
		hours--
	}

	if hours < 0 {
		return fmt.Sprintf("UTC%d", hours)
	}
	return fmt.Sprintf("UTC+%d", hours)
}
