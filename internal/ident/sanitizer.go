// Package ident converts free-text entity names into code-safe, unique
// identifiers for generated classes and artifact file names. A Sanitizer
// tracks every identifier it has handed out for one generation run, so two
// entities with the same display name never collide.
package ident

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"worldforge/internal/config"
	"worldforge/internal/logging"
)

// ErrCollisionExhausted is returned when suffixing cannot produce a unique
// identifier within the configured attempt budget. Practically unreachable
// outside pathological inputs.
var ErrCollisionExhausted = errors.New("identifier collision suffix attempts exhausted")

// Sanitizer produces collision-free identifiers for one generation run.
// Not safe for concurrent use; each run owns its own Sanitizer.
type Sanitizer struct {
	cfg  config.SanitizerConfig
	used map[string]struct{}
}

// New returns a Sanitizer with an empty usage set.
func New(cfg config.SanitizerConfig) *Sanitizer {
	return &Sanitizer{
		cfg:  cfg,
		used: make(map[string]struct{}),
	}
}

// Sanitize converts label into a unique PascalCase identifier built only
// from ASCII alphanumerics and underscores. Labels with no usable
// characters map to the stable fallback Entity_<ordinal>.
// The result is deterministic: the same label with the same prior usage
// set always yields the same identifier.
func (s *Sanitizer) Sanitize(label string, ordinal int) (string, error) {
	base := Pascal(label)
	if base == "" {
		base = fmt.Sprintf("Entity_%d", ordinal)
	}
	if len(base) > s.cfg.MaxLength {
		// base is pure ASCII, so a byte slice cannot split a rune.
		base = base[:s.cfg.MaxLength]
		// Truncation must not leave a trailing separator.
		base = strings.TrimRight(base, "_")
	}

	if _, taken := s.used[base]; !taken {
		s.used[base] = struct{}{}
		return base, nil
	}

	for n := 2; n <= s.cfg.MaxSuffixAttempts; n++ {
		candidate := fmt.Sprintf("%s_%d", base, n)
		if _, taken := s.used[candidate]; !taken {
			s.used[candidate] = struct{}{}
			logging.Sanitize("collision on %q resolved as %q", base, candidate)
			return candidate, nil
		}
	}

	return "", fmt.Errorf("sanitizing %q: %w", label, ErrCollisionExhausted)
}

// Used reports whether an identifier has already been handed out.
func (s *Sanitizer) Used(id string) bool {
	_, ok := s.used[id]
	return ok
}

// Pascal strips label to ASCII alphanumeric words and joins them in
// PascalCase. Returns "" when no usable content survives.
func Pascal(label string) string {
	var b strings.Builder
	for _, word := range splitWords(label) {
		r := []rune(word)
		b.WriteRune(unicode.ToUpper(r[0]))
		for _, c := range r[1:] {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Snake strips label to ASCII alphanumeric words joined by underscores,
// all lower case. Used for record and scene file names.
func Snake(label string) string {
	words := splitWords(label)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// splitWords collapses whitespace and separators, keeping only ASCII
// alphanumeric runs. CamelCase input is preserved as a single word.
// Identifiers feed generated class names, #include lines and file names,
// so anything outside [0-9A-Za-z] is stripped rather than transliterated.
func splitWords(label string) []string {
	var words []string
	var current strings.Builder
	for _, r := range label {
		if asciiAlphanumeric(r) {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

func asciiAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
