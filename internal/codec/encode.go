// Package codec converts values to and from the element-only XML dialect
// used for CV export files. Arrays are written as runs of <item> elements
// and recovered on decode from tag repetition.
package codec

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Declaration is written before the root element of every encoded document
const Declaration = `<?xml version="1.0" encoding="UTF-8"?>`

// ItemTag names the elements holding array entries
const ItemTag = "item"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

var textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()

// Encode serializes v under rootTag. Structs use their json field names
// in declaration order, maps use sorted keys, and scalars are escaped.
func Encode(v any, rootTag string) (string, error) {
	var b strings.Builder
	b.WriteString(Declaration)
	b.WriteString("\n<")
	b.WriteString(rootTag)
	b.WriteString(">\n")
	if err := encodeValue(&b, reflect.ValueOf(v)); err != nil {
		return "", err
	}
	b.WriteString("\n</")
	b.WriteString(rootTag)
	b.WriteString(">")
	return b.String(), nil
}

func encodeValue(b *strings.Builder, v reflect.Value) error {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil
	}

	if v.Type().Implements(textMarshalerType) {
		text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return fmt.Errorf("marshal %s: %w", v.Type(), err)
		}
		b.WriteString(escaper.Replace(string(text)))
		return nil
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := writeElement(b, ItemTag, v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("unsupported map key type %s", v.Type().Key())
		}
		keys := make([]string, 0, v.Len())
		for _, k := range v.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := writeElement(b, k, v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key()))); err != nil {
				return err
			}
		}
		return nil
	case reflect.Struct:
		return encodeStruct(b, v)
	default:
		s, err := scalarString(v)
		if err != nil {
			return err
		}
		b.WriteString(escaper.Replace(s))
		return nil
	}
}

func encodeStruct(b *strings.Builder, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, omitEmpty, skip := jsonName(f)
		if skip {
			continue
		}
		fv := v.Field(i)
		if f.Anonymous && f.Tag.Get("json") == "" && indirectKind(fv) == reflect.Struct {
			if err := encodeValue(b, fv); err != nil {
				return err
			}
			continue
		}
		if omitEmpty && fv.IsZero() {
			continue
		}
		if err := writeElement(b, name, fv); err != nil {
			return err
		}
	}
	return nil
}

func writeElement(b *strings.Builder, tag string, v reflect.Value) error {
	b.WriteString("<")
	b.WriteString(tag)
	b.WriteString(">")
	if err := encodeValue(b, v); err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")
	return nil
}

func jsonName(f reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	return name, strings.Contains(opts, "omitempty"), false
}

func indirectKind(v reflect.Value) reflect.Kind {
	t := v.Type()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Implements(textMarshalerType) {
		return reflect.Invalid
	}
	return t.Kind()
}

func scalarString(v reflect.Value) (string, error) {
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported value kind %s", v.Kind())
	}
}
