package utils

import (
	"net/http"
	"net/url"
	"strings"
)

// WriteText writes text as a text/plain response with the given status code.
//
// Example usage:
//
//	utils.WriteText(w, "1.0.0", http.StatusOK)
func WriteText(w http.ResponseWriter, text string, statusCode int) (int, error) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	return w.Write([]byte(text))
}

// IsSafeRedirect reports whether target is a local absolute path that can be
// used as a post-login redirect. Scheme-relative ("//host"), absolute URLs
// and backslash tricks are rejected.
func IsSafeRedirect(target string) bool {
	if target == "" || !strings.HasPrefix(target, "/") {
		return false
	}
	if strings.HasPrefix(target, "//") || strings.Contains(target, "\\") {
		return false
	}

	u, err := url.Parse(target)
	if err != nil {
		return false
	}

	return u.Scheme == "" && u.Host == ""
}
