// Package jsonx renders values as compact, ASCII-safe JSON text and
// decodes them back. Non-JSON-serializable values are coerced to their
// string form instead of failing the whole encode.
package jsonx

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Encode marshals v to compact JSON with no inter-token whitespace, no
// HTML escaping, and every non-ASCII rune escaped as \uXXXX (surrogate
// pairs above the BMP). Map and slice elements that cannot be
// marshaled natively are replaced by their string representation.
// Cyclic values are an error, as in encoding/json.
func Encode(v any) ([]byte, error) {
	cv, err := coerce(v, make(map[uintptr]struct{}))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(cv); err != nil {
		return nil, err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	return escapeNonASCII(out), nil
}

// Decode unmarshals compact JSON text into a V.
func Decode[V any](b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}

// coerce walks maps and slices, replacing any value that fails a
// marshal probe with fmt.Sprint(value). The replacement applies to the
// whole offending leaf, matching "stringify what cannot serialize".
// seen holds the addresses of containers on the current walk path so a
// self-referencing value errors instead of recursing forever.
func coerce(v any, seen map[uintptr]struct{}) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}
		p := rv.Pointer()
		if _, ok := seen[p]; ok {
			return nil, cycleErr(rv)
		}
		seen[p] = struct{}{}
		out, err := coerce(rv.Elem().Interface(), seen)
		delete(seen, p)
		return out, err
	case reflect.Map:
		if rv.IsNil() {
			return nil, nil // encoding/json renders nil maps as null
		}
		p := rv.Pointer()
		if _, ok := seen[p]; ok {
			return nil, cycleErr(rv)
		}
		seen[p] = struct{}{}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			cv, err := coerce(iter.Value().Interface(), seen)
			if err != nil {
				return nil, err
			}
			out[mapKey(iter.Key())] = cv
		}
		delete(seen, p)
		return out, nil
	case reflect.Slice:
		if rv.IsNil() {
			return nil, nil // nil slices render as null too
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			break // []byte keeps encoding/json's base64 form
		}
		p := rv.Pointer()
		if _, ok := seen[p]; ok {
			return nil, cycleErr(rv)
		}
		seen[p] = struct{}{}
		out, err := coerceElems(rv, seen)
		delete(seen, p)
		return out, err
	case reflect.Array:
		// No address to cycle through; element pointers are tracked
		// by the recursion itself.
		return coerceElems(rv, seen)
	}
	if _, err := json.Marshal(v); err != nil {
		return fmt.Sprint(v), nil
	}
	return v, nil
}

func coerceElems(rv reflect.Value, seen map[uintptr]struct{}) ([]any, error) {
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		cv, err := coerce(rv.Index(i).Interface(), seen)
		if err != nil {
			return nil, err
		}
		out[i] = cv
	}
	return out, nil
}

func cycleErr(rv reflect.Value) error {
	return fmt.Errorf("jsonx: unsupported value: encountered a cycle via %s", rv.Type())
}

// mapKey renders a map key the way encoding/json would: strings as-is,
// TextMarshaler keys through MarshalText, everything else via
// fmt.Sprint.
func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		if b, err := tm.MarshalText(); err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(k.Interface())
}

// escapeNonASCII rewrites every rune >= 0x80 as a \uXXXX escape. JSON
// only permits non-ASCII bytes inside strings, so a whole-document
// pass is safe.
func escapeNonASCII(in []byte) []byte {
	ascii := true
	for _, b := range in {
		if b >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return in
	}

	var sb strings.Builder
	sb.Grow(len(in))
	for i := 0; i < len(in); {
		b := in[i]
		if b < utf8.RuneSelf {
			sb.WriteByte(b)
			i++
			continue
		}
		r, size := utf8.DecodeRune(in[i:])
		i += size
		if r > 0xFFFF {
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(&sb, `\u%04x\u%04x`, r1, r2)
		} else {
			fmt.Fprintf(&sb, `\u%04x`, r)
		}
	}
	return []byte(sb.String())
}
