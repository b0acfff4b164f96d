package fqn

import (
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// RootName is the name of a root node that stands for the host's own view.
const RootName = "rootView"

// TypeName converts a runtime class name into the lower-camel prefix used
// for node names.
// Examples:
//   - UILabel -> label
//   - UIImageView -> imageView
//   - App.CardView -> cardView
//   - URLField -> urlField
func TypeName(runtime string) string {
	// Drop a module qualifier
	if i := strings.LastIndexByte(runtime, '.'); i >= 0 {
		runtime = runtime[i+1:]
	}
	runtime = strings.TrimLeft(runtime, "_")
	runtime = stripPrefix(runtime)
	if runtime == "" {
		return "view"
	}

	rs := []rune(runtime)
	// Lower the leading run of capitals, keeping the last one upper when it
	// starts the next word ("URLField" -> "urlField").
	n := 0
	for n < len(rs) && unicode.IsUpper(rs[n]) {
		n++
	}
	switch {
	case n == 0:
	case n == 1 || n == len(rs):
		for i := 0; i < n; i++ {
			rs[i] = unicode.ToLower(rs[i])
		}
	default:
		end := n
		if unicode.IsLower(rs[n]) {
			end = n - 1
		}
		for i := 0; i < end; i++ {
			rs[i] = unicode.ToLower(rs[i])
		}
	}
	out := make([]rune, 0, len(rs))
	for _, r := range rs {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return "view"
	}
	return string(out)
}

// stripPrefix removes a two-letter framework prefix such as UI or NS when it
// is followed by another capitalized word.
func stripPrefix(s string) string {
	for _, p := range []string{"UI", "NS", "MK", "WK", "SK", "AV"} {
		if strings.HasPrefix(s, p) && len(s) > len(p) && unicode.IsUpper(rune(s[len(p)])) {
			return s[len(p):]
		}
	}
	return s
}

// Compute returns the node name for a runtime type and a sibling path.
// Format: <type>_<path joined by "_">
// Examples:
//   - UIView, [0] -> view_0
//   - UILabel, [0 1] -> label_0_1
func Compute(runtime string, path []int) string {
	parts := make([]string, 0, len(path)+1)
	parts = append(parts, TypeName(runtime))
	for _, p := range path {
		parts = append(parts, strconv.Itoa(p))
	}
	return strings.Join(parts, "_")
}

// ScreenName returns the archive name for a dump file relative to the batch
// directory.
// Examples:
//   - Login.json -> Login
//   - onboarding/Step1.yaml -> onboarding.Step1
func ScreenName(relPath string) string {
	relPath = strings.TrimSuffix(relPath, filepath.Ext(relPath))
	parts := strings.Split(filepath.ToSlash(relPath), "/")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" && p != "." {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ".")
}

// FileName returns the Swift output file for a screen.
func FileName(screen string) string {
	return screen + ".swift"
}
