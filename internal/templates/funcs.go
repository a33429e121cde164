package templates

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/Masterminds/sprig/v3"
)

// FuncMap returns sprig's text functions plus the Python literal helpers
func FuncMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["pystr"] = PyString
	funcs["pybool"] = PyBool
	funcs["pylist"] = PyList
	funcs["underline"] = Underline
	return funcs
}

// PyString renders v as a single-quoted Python string literal.
// Invalid UTF-8 is replaced, so the result is always valid source text.
func PyString(v any) string {
	s := strings.ToValidUTF8(stringify(v), "\uFFFD")

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\x%02x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// PyBool renders v as True or False
func PyBool(v any) string {
	switch t := v.(type) {
	case bool:
		if t {
			return "True"
		}
	case string:
		if ok, err := strconv.ParseBool(t); err == nil && ok {
			return "True"
		}
	}
	return "False"
}

// PyList renders a slice as a Python list of string literals
func PyList(v any) string {
	if v == nil {
		return "[]"
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return "[" + PyString(v) + "]"
	}

	items := make([]string, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		items[i] = PyString(rv.Index(i).Interface())
	}
	return "[" + strings.Join(items, ", ") + "]"
}

// Underline repeats char once per rune of title, as reStructuredText expects
func Underline(title, char string) string {
	return strings.Repeat(char, utf8.RuneCountInString(title))
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
