package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultMaxKeyLength is the longest key the service accepts.
const DefaultMaxKeyLength = 13

// Record is a single key/value entry of the remote store.
type Record struct {
	Key   string `json:"key" yaml:"key"`
	Value int    `json:"value" yaml:"value"`
}

// String renders the record the way it is shown before confirmation.
func (r Record) String() string {
	return fmt.Sprintf("[Key: %s, Value: %d]", r.Key, r.Value)
}

// NormalizeKey trims the raw input and validates it against maxLen.
// A maxLen of zero or less falls back to DefaultMaxKeyLength.
func NormalizeKey(raw string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxKeyLength
	}

	key := strings.TrimSpace(raw)
	if key == "" {
		return "", ErrInvalidKey.WithDetails("key cannot be empty")
	}
	if n := utf8.RuneCountInString(key); n > maxLen {
		return "", ErrInvalidKey.WithDetails(fmt.Sprintf("key is %d characters, limit is %d", n, maxLen))
	}
	return key, nil
}

// ParseValue parses a record value typed by the user. The service stores
// 32-bit integers, so anything outside that range is rejected here.
func ParseValue(raw string) (int, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, ErrInvalidValue.WithCause(err)
	}
	return int(v), nil
}
