package logger

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// bearerPrefix marks an Authorization header value.
const bearerPrefix = "Bearer "

// jwtPrefix is the base64url encoding of `{"` which starts every JWT header.
const jwtPrefix = "eyJ"

// Sensitive key patterns that should be redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"credential",
	"authorization",
	"bearer",
	"reset_code",
}

const redactedValue = "***REDACTED***"

func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		strVal := a.Value.String()
		if strVal == "" {
			return a
		}
		if IsSensitiveValue(strVal) {
			return slog.String(a.Key, RedactString(strVal))
		}
		if IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}

// maskValue keeps the first and last three characters of body.
func maskValue(prefix, body string) string {
	if len(body) <= 6 {
		return prefix + "***"
	}
	return prefix + body[:3] + "..." + body[len(body)-3:]
}

// RedactString masks a bearer credential or a JWT, leaving other values alone.
func RedactString(value string) string {
	if strings.HasPrefix(value, bearerPrefix) {
		return maskValue(bearerPrefix, strings.TrimPrefix(value, bearerPrefix))
	}
	if looksLikeJWT(value) {
		return maskValue("", value)
	}
	return value
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}

// IsSensitiveValue checks if a value appears to be a credential.
func IsSensitiveValue(value string) bool {
	return strings.HasPrefix(value, bearerPrefix) || looksLikeJWT(value)
}

func looksLikeJWT(value string) bool {
	return strings.HasPrefix(value, jwtPrefix) && strings.Count(value, ".") == 2
}

// RedactJSON renders a JSON document for logging with the values of
// sensitive object keys replaced. Input that is not JSON is returned as text.
func RedactJSON(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return RedactString(string(data))
	}
	out, err := json.Marshal(redactTree(doc))
	if err != nil {
		return string(data)
	}
	return string(out)
}

func redactTree(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			if s, ok := val.(string); ok && s != "" && IsSensitiveKey(k) {
				t[k] = redactedValue
				continue
			}
			t[k] = redactTree(val)
		}
		return t
	case []any:
		for i := range t {
			t[i] = redactTree(t[i])
		}
		return t
	case string:
		return RedactString(t)
	default:
		return v
	}
}
