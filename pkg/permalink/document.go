package permalink

import (
	"bytes"
	"regexp"
	"strings"
)

// LineKind tells plain lines apart from the identifier field line.
type LineKind int

const (
	Plain LineKind = iota
	Field
)

// Line is one line of a document. The terminator is kept apart from the text
// so rewrites never change the newline style.
type Line struct {
	Kind LineKind
	Text string
	EOL  string

	// Field lines only: Text == prefix + value + suffix.
	prefix string
	value  string
	suffix string
}

// Codec parses documents for a given field key.
type Codec struct {
	key     string
	pattern *regexp.Regexp
}

// NewCodec returns a codec matching `key: value` lines, case-insensitive on the key.
// An empty key selects DefaultKey.
func NewCodec(key string) *Codec {
	if key == "" {
		key = DefaultKey
	}
	return &Codec{
		key:     key,
		pattern: regexp.MustCompile(`(?i)^(\s*` + regexp.QuoteMeta(key) + `\s*:\s*)(.*?)(\s*)$`),
	}
}

// Key returns the field key the codec writes on insertion.
func (c *Codec) Key() string {
	return c.key
}

// Document is an ordered sequence of typed lines.
// At most one line is of kind Field: the first one matching the key.
type Document struct {
	codec *Codec
	lines []Line
}

// Parse splits data into lines, marking the first field line.
func (c *Codec) Parse(data []byte) *Document {
	doc := &Document{codec: c}
	found := false
	for len(data) > 0 {
		var text, eol string
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			text, eol = string(data[:i]), "\n"
			data = data[i+1:]
			if strings.HasSuffix(text, "\r") {
				text, eol = text[:len(text)-1], "\r\n"
			}
		} else {
			text = string(data)
			data = nil
		}
		line := Line{Kind: Plain, Text: text, EOL: eol}
		if !found {
			if m := c.pattern.FindStringSubmatch(text); m != nil {
				line.Kind = Field
				line.prefix, line.value, line.suffix = m[1], m[2], m[3]
				found = true
			}
		}
		doc.lines = append(doc.lines, line)
	}
	return doc
}

// Lines returns a copy of the document lines.
func (d *Document) Lines() []Line {
	out := make([]Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// Bytes renders the document exactly as it would be written to disk.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	for _, l := range d.lines {
		buf.WriteString(l.Text)
		buf.WriteString(l.EOL)
	}
	return buf.Bytes()
}

func (d *Document) fieldIndex() int {
	for i, l := range d.lines {
		if l.Kind == Field {
			return i
		}
	}
	return -1
}

// Identifier returns the unquoted value of the field line.
// A missing line and an empty value are both reported as absent.
func (d *Document) Identifier() (string, bool) {
	i := d.fieldIndex()
	if i < 0 {
		return "", false
	}
	v := Unquote(d.lines[i].value)
	if v == "" {
		return "", false
	}
	return v, true
}

// SetIdentifier returns a new document whose field line holds value.
// An existing field line keeps its key text, colon spacing, trailing whitespace,
// terminator and quote style. Without one, `key: value` is inserted as the
// second line, or as the only line of an empty document. The receiver is not modified.
// value is normalized with Unquote first, so Identifier reads back exactly what was set.
func (d *Document) SetIdentifier(value string) *Document {
	value = Unquote(value)
	out := &Document{codec: d.codec, lines: d.Lines()}

	if i := out.fieldIndex(); i >= 0 {
		l := out.lines[i]
		if l.value == "" && !strings.HasSuffix(l.prefix, " ") && !strings.HasSuffix(l.prefix, "\t") {
			l.prefix += " "
		}
		l.value = requote(l.value, value)
		l.Text = l.prefix + l.value + l.suffix
		out.lines[i] = l
		return out
	}

	nl := out.newline()
	field := Line{
		Kind:   Field,
		prefix: d.codec.key + ": ",
		value:  value,
	}
	field.Text = field.prefix + field.value

	if len(out.lines) == 0 {
		field.EOL = nl
		out.lines = []Line{field}
		return out
	}

	if out.lines[0].EOL == "" {
		out.lines[0].EOL = nl
	} else {
		field.EOL = nl
	}
	out.lines = append(out.lines[:1], append([]Line{field}, out.lines[1:]...)...)
	return out
}

// newline reports the terminator used by the document, defaulting to "\n".
func (d *Document) newline() string {
	for _, l := range d.lines {
		if l.EOL != "" {
			return l.EOL
		}
	}
	return "\n"
}

// requote wraps value in the quote characters of old, if old was quoted.
func requote(old, value string) string {
	old = strings.TrimSpace(old)
	if len(old) < 2 {
		return value
	}
	q := old[0]
	if (q != '"' && q != '\'') || old[len(old)-1] != q || strings.IndexByte(value, q) >= 0 {
		return value
	}
	return string(q) + value + string(q)
}
