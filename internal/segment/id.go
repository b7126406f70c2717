package segment

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RequestID identifies a request within a document. The regex path produces
// plain integer ids; the LLM path may produce sub-part ids like "4(a)".
// On the wire, all-digit ids serialize as bare JSON numbers so the response
// shape matches what upstream clients expect from both paths.
type RequestID string

// MarshalJSON emits a bare number for all-digit ids and a string otherwise.
func (id RequestID) MarshalJSON() ([]byte, error) {
	s := string(id)
	if _, err := strconv.Atoi(s); err == nil && s != "" {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *RequestID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return fmt.Errorf("empty request id")
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RequestID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("request id must be a number or string: %w", err)
	}
	*id = RequestID(n.String())
	return nil
}

// leadingDigits returns the leading integer run of s, mirroring how the
// numeric path parses header captures ("4(a)" -> "4").
func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}
