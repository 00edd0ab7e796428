package transfer

import (
	"encoding"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/khrees2412/cvblue/internal/codec"
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// decodeTyped converts a generic XML tree into out, using out's type to
// undo what the element-only encoding loses: list shapes and scalar types.
func decodeTyped(tree any, out any) error {
	shaped := coerce(tree, reflect.TypeOf(out).Elem())
	data, err := json.Marshal(shaped)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func coerce(v any, t reflect.Type) any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		s, _ := v.(string)
		if s == "" {
			return nil
		}
		return s
	}

	switch t.Kind() {
	case reflect.Slice:
		return coerceList(v, t.Elem())
	case reflect.Struct:
		m, ok := v.(map[string]any)
		if !ok {
			return map[string]any{}
		}
		out := make(map[string]any, len(m))
		coerceFields(m, t, out)
		return out
	case reflect.Bool:
		switch x := v.(type) {
		case bool:
			return x
		case string:
			b, _ := strconv.ParseBool(strings.TrimSpace(x))
			return b
		}
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch x := v.(type) {
		case float64:
			return int64(x)
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
			if err != nil {
				f, ferr := strconv.ParseFloat(strings.TrimSpace(x), 64)
				if ferr != nil {
					return 0
				}
				return int64(f)
			}
			return n
		}
		return 0
	case reflect.String:
		switch x := v.(type) {
		case string:
			return x
		case float64:
			return strconv.FormatFloat(x, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(x)
		}
		return ""
	}
	return v
}

// coerceList recovers a list from the shapes the decoder produces for it:
// a bare array, an empty leaf, a lone {"item": x}, or {"items": [...]}.
func coerceList(v any, elem reflect.Type) []any {
	var items []any
	switch x := v.(type) {
	case []any:
		items = x
	case map[string]any:
		if inner, ok := x[codec.ItemsKey].([]any); ok {
			items = inner
		} else if single, ok := x[codec.ItemTag]; ok && len(x) == 1 {
			items = []any{single}
		}
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, coerce(item, elem))
	}
	return out
}

func coerceFields(m map[string]any, t reflect.Type, out map[string]any) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if f.Anonymous && tag == "" && f.Type.Kind() == reflect.Struct {
			coerceFields(m, f.Type, out)
			continue
		}
		if !f.IsExported() || tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		raw, ok := m[name]
		if !ok {
			continue
		}
		out[name] = coerce(raw, f.Type)
	}
}
