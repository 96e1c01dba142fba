// Package links discovers, normalizes, and classifies the URLs found in a résumé.
package links

import (
	"net/url"
	"regexp"
	"strings"
)

// TrackingParams are query parameters removed during normalization.
var TrackingParams = []string{"utm_source", "utm_medium", "utm_campaign", "utm_content", "utm_term", "ref", "source"}

var schemeRe = regexp.MustCompile(`^https?://`)

// Normalize canonicalizes a URL for comparison and deduplication.
//
// The result is lower-cased, always https, has no leading "www.", no trailing
// slashes, no tracking parameters and no bare "?". mailto: URLs are only
// trimmed. Input that does not parse as a URL is returned trimmed. Normalize
// is idempotent.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(trimmed), "mailto:") {
		return trimmed
	}

	s := strings.ToLower(trimmed)
	if !schemeRe.MatchString(s) {
		s = "https://" + s
	}
	// Exactly one scheme is dropped, so a host that itself starts with a
	// scheme once "www." is gone survives a second pass unchanged.
	rest := s
	if strings.HasPrefix(rest, "https://") {
		rest = strings.TrimPrefix(rest, "https://")
	} else {
		rest = strings.TrimPrefix(rest, "http://")
	}
	for strings.HasPrefix(rest, "www.") {
		rest = strings.TrimPrefix(rest, "www.")
	}
	s = "https://" + rest

	if _, err := url.Parse(s); err != nil {
		return trimmed
	}

	base, fragment, hasFragment := strings.Cut(s, "#")
	base, query, _ := strings.Cut(base, "?")
	query = stripTrackingParams(query)

	if len(base) > len("https://") {
		base = "https://" + strings.TrimRight(strings.TrimPrefix(base, "https://"), "/")
	}

	out := base
	if query != "" {
		out += "?" + query
	}
	if hasFragment {
		out += "#" + fragment
	}
	return out
}

// stripTrackingParams drops tracking parameters while keeping the order and
// encoding of everything else.
func stripTrackingParams(query string) string {
	if query == "" {
		return ""
	}
	parts := strings.Split(query, "&")
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		key, _, _ := strings.Cut(part, "=")
		if unescaped, err := url.QueryUnescape(key); err == nil {
			key = unescaped
		}
		if isTrackingParam(key) {
			continue
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, "&")
}

func isTrackingParam(key string) bool {
	for _, p := range TrackingParams {
		if key == p {
			return true
		}
	}
	return false
}

// IsValidURL reports whether s is an absolute http(s) URL with a host.
func IsValidURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// EnsureScheme prefixes https:// to a bare host/path match. Empty input stays empty.
func EnsureScheme(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || schemeRe.MatchString(strings.ToLower(s)) {
		return s
	}
	return "https://" + s
}
