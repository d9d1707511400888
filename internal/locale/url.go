package locale

import (
	"net/url"
	"strings"
)

// SwitchURL rewrites rawURL so its path starts with the given locale. An
// existing leading two-letter path segment is treated as the current locale
// and replaced; otherwise the locale is prepended. Query and fragment are
// preserved. On any parse failure the input URL is returned unchanged.
func SwitchURL(rawURL, newLocale string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	segments := splitPath(u.Path)
	if len(segments) > 0 && isLocaleSegment(segments[0]) {
		segments = segments[1:]
	}
	segments = append([]string{strings.ToLower(newLocale)}, segments...)

	u.Path = "/" + strings.Join(segments, "/")
	return u.String()
}

func splitPath(path string) []string {
	var out []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func isLocaleSegment(seg string) bool {
	if len(seg) != 2 {
		return false
	}
	for _, r := range seg {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
