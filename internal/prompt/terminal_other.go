//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package prompt

// IsTerminal always reports false; input falls back to the buffered reader.
func IsTerminal(uintptr) bool {
	return false
}
