package logger

import (
	"log/slog"
	"strings"
)

// Prefixes that mark a string as a credential whatever its key.
// JWTs always start with the base64 of `{"`.
var credentialPrefixes = []string{"Bearer ", "eyJ"}

// Attribute keys whose values are never logged. "key" is absent on
// purpose: record keys are plain data.
var secretKeys = []string{"password", "secret", "token", "credential", "authorization"}

const redacted = "***REDACTED***"

// redactSensitive masks credential-shaped values and blanks the values
// of secret-named keys, descending into groups.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}

	case slog.KindString:
		v := a.Value.String()
		if prefix, ok := credentialPrefix(v); ok {
			return slog.String(a.Key, mask(v, prefix))
		}
		if v != "" && secretKey(a.Key) {
			return slog.String(a.Key, redacted)
		}
	}
	return a
}

// RedactString masks a token for display outside of logging, keeping
// enough of both ends to tell tokens apart.
func RedactString(value string) string {
	if value == "" {
		return ""
	}
	prefix, _ := credentialPrefix(value)
	return mask(value, prefix)
}

func credentialPrefix(v string) (string, bool) {
	for _, p := range credentialPrefixes {
		if strings.HasPrefix(v, p) {
			return p, true
		}
	}
	return "", false
}

func secretKey(key string) bool {
	key = strings.ToLower(key)
	for _, s := range secretKeys {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}

// mask keeps prefix plus the first and last three characters of the rest.
func mask(value, prefix string) string {
	body := value[len(prefix):]
	if len(body) <= 6 {
		return prefix + "***"
	}
	return prefix + body[:3] + "..." + body[len(body)-3:]
}
