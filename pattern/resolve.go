package pattern

import (
	"strings"

	burnerrors "github.com/burnshell/burn/errors"
)

// ResolveAgainstWD implements §4.7's wd-relative resolution: a relative
// pattern is prepended with wd before compiling; if walking ".." pops past
// the root, the first pass is retried without wd prepended, and a second
// underflow is an error (scenario S3).
func ResolveAgainstWD(wd, raw string) (string, burnerrors.DriverError) {
	if strings.HasPrefix(raw, "/") {
		return raw, nil
	}

	joined := joinPath(wd, raw)
	if resolved, ok := popDotDot(joined); ok {
		return resolved, nil
	}

	// Retry without wd prepended.
	if resolved, ok := popDotDot("/" + raw); ok {
		return resolved, nil
	}

	return "", burnerrors.ErrUnderflow
}

func joinPath(wd, raw string) string {
	if wd == "" || wd == "/" {
		return "/" + raw
	}
	return strings.TrimSuffix(wd, "/") + "/" + raw
}

// popDotDot resolves ".." components against the preceding path segment,
// reporting false if a ".." would pop past the root (underflow).
func popDotDot(path string) (string, bool) {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	var stack []string
	for _, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(stack) == 0 {
				return "", false
			}
			stack = stack[:len(stack)-1]
		default:
			stack = append(stack, part)
		}
	}
	return "/" + strings.Join(stack, "/"), true
}
