package props

import (
	"math"
	"strings"

	"github.com/DeusData/viewcode/internal/model"
)

const colorTolerance = 1e-6

type paletteColor struct {
	name       string
	r, g, b, a float64
}

// palette is checked in order; the first exact match wins.
var palette = []paletteColor{
	{"white", 1, 1, 1, 1},
	{"black", 0, 0, 0, 1},
	{"gray", 0.5, 0.5, 0.5, 1},
	{"lightGray", 2.0 / 3, 2.0 / 3, 2.0 / 3, 1},
	{"darkGray", 1.0 / 3, 1.0 / 3, 1.0 / 3, 1},
	{"red", 1, 0, 0, 1},
	{"green", 0, 1, 0, 1},
	{"blue", 0, 0, 1, 1},
	{"cyan", 0, 1, 1, 1},
	{"yellow", 1, 1, 0, 1},
	{"magenta", 1, 0, 1, 1},
	{"orange", 1, 0.5, 0, 1},
	{"purple", 0.5, 0, 0.5, 1},
	{"brown", 0.6, 0.4, 0.2, 1},
	{"clear", 0, 0, 0, 0},
}

func near(a, b float64) bool { return math.Abs(a-b) <= colorTolerance }

// ColorValue returns the palette constant for a color, or a literal.
func ColorValue(r, g, b, a float64) model.Value {
	for _, p := range palette {
		if near(r, p.r) && near(g, p.g) && near(b, p.b) && near(a, p.a) {
			return model.NamedColor{Name: p.name}
		}
	}
	return model.RGBAColor{R: r, G: g, B: b, A: a}
}

// convertColor accepts {r,g,b,a} or {red,green,blue,alpha} maps, a 3 or 4
// element list, or a palette name.
func convertColor(raw any) (model.Value, bool) {
	switch v := raw.(type) {
	case string:
		for _, p := range palette {
			if strings.EqualFold(p.name, v) {
				return model.NamedColor{Name: p.name}, true
			}
		}
		return model.Failed{Raw: raw}, true
	case map[string]any:
		get := func(short, long string, def float64) (float64, bool) {
			if x, ok := v[short]; ok {
				return number(x)
			}
			if x, ok := v[long]; ok {
				return number(x)
			}
			return def, true
		}
		r, ok1 := get("r", "red", 0)
		g, ok2 := get("g", "green", 0)
		b, ok3 := get("b", "blue", 0)
		a, ok4 := get("a", "alpha", 1)
		if !(ok1 && ok2 && ok3 && ok4) {
			return model.Failed{Raw: raw}, true
		}
		return ColorValue(r, g, b, a), true
	case []any:
		if len(v) != 3 && len(v) != 4 {
			return model.Failed{Raw: raw}, true
		}
		c := [4]float64{0, 0, 0, 1}
		for i, x := range v {
			f, ok := number(x)
			if !ok {
				return model.Failed{Raw: raw}, true
			}
			c[i] = f
		}
		return ColorValue(c[0], c[1], c[2], c[3]), true
	}
	return model.Failed{Raw: raw}, true
}

// number reads a JSON (float64) or YAML (int, float64) number.
func number(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

func convertString(raw any) (model.Value, bool) {
	s, ok := raw.(string)
	if !ok {
		return nil, false
	}
	return model.String{S: s}, true
}

func convertInt(raw any) (model.Value, bool) {
	f, ok := number(raw)
	if !ok {
		return model.Failed{Raw: raw}, true
	}
	return model.Int{N: int(f)}, true
}

func convertFloat(raw any) (model.Value, bool) {
	f, ok := number(raw)
	if !ok {
		return model.Failed{Raw: raw}, true
	}
	return model.Float{F: f}, true
}

// convertFont accepts {name, size}.
func convertFont(raw any) (model.Value, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return model.Failed{Raw: raw}, true
	}
	name, _ := m["name"].(string)
	size, ok := number(m["size"])
	if name == "" || !ok {
		return model.Failed{Raw: raw}, true
	}
	return model.Font{Name: name, Size: size}, true
}

// convertImage emits an empty-named image: asset names are not recoverable
// from a rendered widget. false or an empty string mean no image.
func convertImage(raw any) (model.Value, bool) {
	switch v := raw.(type) {
	case bool:
		if !v {
			return nil, false
		}
	case string:
		if v == "" {
			return nil, false
		}
	}
	return model.Constructor{Type: "UIImage", Args: []model.Arg{
		{Label: "named", Value: model.String{S: ""}},
	}}, true
}

// enumTable lists the cases of an enum in raw-value order.
type enumTable []string

var (
	textAlignments = enumTable{"left", "center", "right", "justified", "natural"}
	lineBreakModes = enumTable{"byWordWrapping", "byCharWrapping", "byClipping",
		"byTruncatingHead", "byTruncatingTail", "byTruncatingMiddle"}
	borderStyles = enumTable{"none", "line", "bezel", "roundedRect"}
	contentModes = enumTable{"scaleToFill", "scaleAspectFit", "scaleAspectFill", "redraw",
		"center", "top", "bottom", "left", "right", "topLeft", "topRight", "bottomLeft", "bottomRight"}
	axes = enumTable{"horizontal", "vertical"}
)

// lookup accepts a raw integer value or a case name.
func (t enumTable) lookup(raw any) (model.Value, bool) {
	if s, ok := raw.(string); ok {
		s = strings.TrimPrefix(s, ".")
		for _, c := range t {
			if strings.EqualFold(c, s) {
				return model.Enum{Case: c}, true
			}
		}
		return model.Failed{Raw: raw}, false
	}
	f, ok := number(raw)
	if !ok || f != math.Trunc(f) || f < 0 || int(f) >= len(t) {
		return model.Failed{Raw: raw}, false
	}
	return model.Enum{Case: t[int(f)]}, true
}

func enumConverter(t enumTable) converter {
	return func(raw any) (model.Value, bool) {
		v, _ := t.lookup(raw)
		return v, true
	}
}
