package log

import (
	"log/slog"
	"regexp"
	"slices"
	"strings"
)

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***REDACTED***"

// Redactor decides which log attributes carry secrets.
// A dictionary attack handles candidate and recovered passwords, decrypted
// plaintext and derived key material; none of them may reach a log.
type Redactor struct {
	// keys are attribute keys masked on exact, case-insensitive match.
	keys map[string]bool

	// keywords mask any key that contains them.
	keywords []string

	// patterns mask string values of any key.
	patterns []*regexp.Regexp
}

// DefaultRedactor returns the Redactor used by NewSecureHandler.
//
// The bare word "key" only matches exactly; as a keyword it would hide
// unrelated keys such as "keyboard".
func DefaultRedactor() *Redactor {
	return &Redactor{
		keys: map[string]bool{
			"password":  true,
			"passwd":    true,
			"candidate": true,
			"plaintext": true,
			"message":   true,
			"key":       true,
			"secret":    true,
		},
		keywords: []string{
			"password", "passwd", "plaintext", "secret", "private", "_key", "derived",
		},
		patterns: []*regexp.Regexp{
			// Fernet key: 32 bytes in URL-safe base64
			regexp.MustCompile(`^[A-Za-z0-9_-]{43}=$`),
			// Raw 32-byte key in hex
			regexp.MustCompile(`^[0-9a-fA-F]{64}$`),
			// PEM private key markers
			regexp.MustCompile(`(?i)-----BEGIN.*(PRIVATE|SECRET).*KEY-----`),
		},
	}
}

// WithKeys returns a copy of r that also masks the given attribute keys.
func (r *Redactor) WithKeys(keys ...string) *Redactor {
	c := &Redactor{
		keys:     make(map[string]bool, len(r.keys)+len(keys)),
		keywords: slices.Clone(r.keywords),
		patterns: slices.Clone(r.patterns),
	}
	for k := range r.keys {
		c.keys[k] = true
	}
	for _, k := range keys {
		c.keys[strings.ToLower(k)] = true
	}
	return c
}

// Redact returns a with its value masked if it is sensitive. Groups are
// redacted member by member.
func (r *Redactor) Redact(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		members := a.Value.Group()
		redacted := make([]slog.Attr, len(members))
		for i, m := range members {
			redacted[i] = r.Redact(m)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redacted...)}
	}

	if r.SensitiveKey(a.Key) || r.SensitiveValue(a.Value) {
		return slog.String(a.Key, MaskValue)
	}
	return a
}

// SensitiveKey reports whether an attribute key names secret data.
func (r *Redactor) SensitiveKey(key string) bool {
	key = strings.ToLower(key)
	if r.keys[key] {
		return true
	}
	for _, keyword := range r.keywords {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

// SensitiveValue reports whether a value looks like key material.
// Byte slices are checked as text.
func (r *Redactor) SensitiveValue(v slog.Value) bool {
	var s string
	switch v.Kind() {
	case slog.KindString:
		s = v.String()
	case slog.KindAny:
		b, ok := v.Any().([]byte)
		if !ok {
			return false
		}
		s = string(b)
	default:
		return false
	}

	for _, pattern := range r.patterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}
