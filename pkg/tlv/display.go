package tlv

import (
	"fmt"
	"io"
	"strings"
)

// DisplayOptions tunes the pretty-printer's decorative output. It is purely
// observational: Display need not round-trip.
type DisplayOptions struct {
	// Interactive adds a blank line after each template for terminal
	// reading; set false when stdout is not a terminal.
	Interactive bool
}

// Display renders f as "0x{tag} (\"{name}\") => {value}," one line per
// field, indenting templates, using lookup for display names. Unknown tags
// render as "<unknown tag>".
func Display(w io.Writer, lookup Lookup, f Field, opts DisplayOptions) {
	displayField(w, lookup, f, 0, opts)
}

// DisplayAll renders a top-level list of fields, e.g. the contents of a
// decoded card response.
func DisplayAll(w io.Writer, lookup Lookup, fields []Field, opts DisplayOptions) {
	for _, f := range fields {
		displayField(w, lookup, f, 0, opts)
	}
}

func displayField(w io.Writer, lookup Lookup, f Field, depth int, opts DisplayOptions) {
	indent := strings.Repeat("  ", depth)
	name, _, ok := lookup.Lookup(f.Tag)
	if !ok {
		name = "<unknown tag>"
	}
	if f.Value.Kind == KindTemplate {
		fmt.Fprintf(w, "%s0x%s (\"%s\") => {\n", indent, f.Tag, name)
		for _, child := range f.Value.Fields {
			displayField(w, lookup, child, depth+1, opts)
		}
		fmt.Fprintf(w, "%s},\n", indent)
		if opts.Interactive {
			fmt.Fprintln(w)
		}
		return
	}
	fmt.Fprintf(w, "%s0x%s (\"%s\") => %s,\n", indent, f.Tag, name, displayValue(f.Value))
}

func displayValue(v Value) string {
	switch v.Kind {
	case KindAlphabetic, KindAlphanumeric, KindAlphanumericSpecial, KindDigitString:
		return fmt.Sprintf("%q", v.Str)
	case KindBinary:
		return fmt.Sprintf("%X", v.Bin)
	case KindNumeric:
		if v.Num == nil {
			return "0"
		}
		return v.Num.String()
	case KindDOL:
		var parts []string
		for _, e := range v.DOL {
			parts = append(parts, fmt.Sprintf("0x%s:%d", e.Tag, e.Size))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<empty>"
	}
}
