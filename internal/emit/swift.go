package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DeusData/viewcode/internal/model"
)

// FormatFloat renders f as a Swift floating-point literal. Whole numbers keep
// a trailing ".0" so 44 renders as "44.0".
func FormatFloat(f float64) string {
	if f == 0 {
		return "0.0"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// Quote renders s as a Swift string literal.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u{%x}`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// failedToken stands in for a value no table could map.
const failedToken = `"Failed"`

// Value renders a symbolic value as a Swift expression.
func Value(v model.Value) string {
	switch v := v.(type) {
	case model.NamedColor:
		return "UIColor." + v.Name
	case model.RGBAColor:
		return fmt.Sprintf("UIColor(red: %s, green: %s, blue: %s, alpha: %s)",
			FormatFloat(v.R), FormatFloat(v.G), FormatFloat(v.B), FormatFloat(v.A))
	case model.Font:
		return fmt.Sprintf("UIFont(name: %s, size: %s)", Quote(v.Name), FormatFloat(v.Size))
	case model.Enum:
		return "." + v.Case
	case model.String:
		return Quote(v.S)
	case model.Int:
		return strconv.Itoa(v.N)
	case model.Float:
		return FormatFloat(v.F)
	case model.Bool:
		return strconv.FormatBool(v.B)
	case model.Constructor:
		return v.Type + "(" + Args(v.Args) + ")"
	case model.Failed:
		return failedToken
	case nil:
		return "nil"
	}
	return failedToken
}

// Args renders a labelled argument list without parentheses.
func Args(args []model.Arg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a.Label == "" {
			parts[i] = Value(a.Value)
		} else {
			parts[i] = a.Label + ": " + Value(a.Value)
		}
	}
	return strings.Join(parts, ", ")
}

// CallExpr renders recv.method(args).
func CallExpr(recv string, c model.Call) string {
	return recv + "." + c.Method + "(" + Args(c.Args) + ")"
}
