// Package props turns raw widget attributes into symbolic property values
// and initializer calls.
package props

import (
	"log/slog"
	"sync"

	"github.com/DeusData/viewcode/internal/model"
)

// commonKeys are inspected on every widget, before the per-type keys.
var commonKeys = []string{"backgroundColor", "tag"}

var (
	tableMu sync.RWMutex
	table   = map[string][]string{}
)

// RegisterType sets the ordered attribute keys inspected for a runtime type,
// after the common keys. Registering a type again replaces its keys.
func RegisterType(typeName string, keys ...string) {
	tableMu.Lock()
	defer tableMu.Unlock()
	table[typeName] = append([]string(nil), keys...)
}

// Keys returns the ordered keys inspected for typeName.
func Keys(typeName string) []string {
	tableMu.RLock()
	defer tableMu.RUnlock()
	keys := make([]string, 0, len(commonKeys)+len(table[typeName]))
	keys = append(keys, commonKeys...)
	return append(keys, table[typeName]...)
}

func init() {
	RegisterType("UIView")
	RegisterType("UILabel", "text", "textColor", "font", "numberOfLines", "lineBreakMode", "textAlignment")
	RegisterType("UITextField", "placeholder", "textColor", "font", "borderStyle")
	RegisterType("UITextView", "text")
	RegisterType("UIButton", "titleLabel")
	RegisterType("UISegmentedControl", "segments")
	RegisterType("UIImageView", "contentMode", "image")
	RegisterType("UIStackView", "axis", "spacing")
}

// converter maps a raw attribute to a symbolic value. ok is false when the
// raw value should be skipped.
type converter func(raw any) (v model.Value, ok bool)

// callBuilder expands a raw attribute into initializer calls instead of a
// property.
type callBuilder func(raw any) []model.Call

var converters = map[string]converter{
	"backgroundColor": convertColor,
	"textColor":       convertColor,
	"text":            convertString,
	"title":           convertString,
	"placeholder":     convertString,
	"font":            convertFont,
	"numberOfLines":   convertInt,
	"lineBreakMode":   enumConverter(lineBreakModes),
	"textAlignment":   enumConverter(textAlignments),
	"borderStyle":     enumConverter(borderStyles),
	"contentMode":     enumConverter(contentModes),
	"axis":            enumConverter(axes),
	"image":           convertImage,
	"spacing":         convertFloat,
}

var callBuilders = map[string]callBuilder{
	"titleLabel": titleLabelCalls,
	"segments":   segmentCalls,
}

// Extract fills n.Properties and n.InitCalls from its widget's attributes.
// Keys follow the type's table order; absent attributes are skipped.
func Extract(n *model.Node) {
	n.Properties = n.Properties[:0]
	n.InitCalls = n.InitCalls[:0]
	if n.Source == nil {
		return
	}
	for _, key := range Keys(n.TypeName) {
		if key == "tag" {
			if tag := n.Source.Tag(); tag != 0 {
				n.Properties = append(n.Properties, model.Property{Key: key, Value: model.Int{N: tag}})
			}
			continue
		}
		raw, ok := n.Source.Attr(key)
		if !ok {
			continue
		}
		if build, ok := callBuilders[key]; ok {
			n.InitCalls = append(n.InitCalls, build(raw)...)
			continue
		}
		conv, ok := converters[key]
		if !ok {
			slog.Debug("props.no_converter", "node", n.Name, "key", key)
			continue
		}
		v, ok := conv(raw)
		if !ok {
			continue
		}
		if f, isFailed := v.(model.Failed); isFailed {
			slog.Warn("props.unmapped", "node", n.Name, "key", key, "raw", f.Raw)
		}
		n.Properties = append(n.Properties, model.Property{Key: key, Value: v})
	}
}

// ExtractAll runs Extract over every node of t and returns the number of
// properties and calls produced.
func ExtractAll(t *model.Tree) (properties, calls int) {
	for i := range t.Nodes {
		Extract(&t.Nodes[i])
		properties += len(t.Nodes[i].Properties)
		calls += len(t.Nodes[i].InitCalls)
	}
	return properties, calls
}

func titleLabelCalls(raw any) []model.Call {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	var calls []model.Call
	normal := model.Arg{Label: "for", Value: model.Enum{Case: "normal"}}
	if text, ok := m["text"].(string); ok {
		calls = append(calls, model.Call{Method: "setTitle", Args: []model.Arg{
			{Value: model.String{S: text}}, normal,
		}})
	}
	if c, ok := m["textColor"]; ok {
		if v, ok := convertColor(c); ok {
			calls = append(calls, model.Call{Method: "setTitleColor", Args: []model.Arg{
				{Value: v}, normal,
			}})
		}
	}
	return calls
}

func segmentCalls(raw any) []model.Call {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var calls []model.Call
	for i, s := range list {
		title, ok := s.(string)
		if !ok {
			continue
		}
		calls = append(calls, model.Call{Method: "insertSegment", Args: []model.Arg{
			{Label: "withTitle", Value: model.String{S: title}},
			{Label: "at", Value: model.Int{N: i}},
			{Label: "animated", Value: model.Bool{B: false}},
		}})
	}
	return calls
}
