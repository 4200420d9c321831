package diag

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Context is a diagnostic together with the source it was reported against.
// It renders the offending line with a marker under the culprit.
type Context struct {
	Name   string
	Source string
	Diagnostic
}

// NewContext creates a new Context.
func NewContext(name, source string, d Diagnostic) *Context {
	return &Context{Name: name, Source: source, Diagnostic: d}
}

// Variables controlling the style of the culprit.
var (
	culpritBegin  = "\033[1;4m"
	culpritEnd    = "\033[m"
	culpritMarker = "^"
)

// Show renders the diagnostic as
//
//	<name>, line <n>: <message>
//	<source line>
//	    ^^^
//	hint: <hint>
//
// The hint line is present only when the diagnostic has one. When color is
// set the culprit is also underlined in the source line.
func (c *Context) Show(color bool) string {
	from, to := c.Span.Start.Offset, c.Span.End.Offset
	if from < 0 || from > len(c.Source) || to < from {
		return fmt.Sprintf("%s, invalid position %d-%d: %s", c.Name, from, to, c.Message)
	}
	if to > len(c.Source) {
		to = len(c.Source)
	}

	head := lastLine(c.Source[:from])
	line := head + firstLine(c.Source[from:])
	culprit := c.Source[from:to]
	if i := strings.IndexByte(culprit, '\n'); i >= 0 {
		culprit = culprit[:i]
	}
	tail := line[len(head)+len(culprit):]

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s, line %d: %s\n", c.Name, c.Span.Start.Line, c.Message)
	if color && culprit != "" {
		sb.WriteString(head + culpritBegin + culprit + culpritEnd + tail)
	} else {
		sb.WriteString(line)
	}
	sb.WriteByte('\n')
	sb.WriteString(indentLike(head))
	width := utf8.RuneCountInString(culprit)
	if width == 0 {
		width = 1
	}
	sb.WriteString(strings.Repeat(culpritMarker, width))
	if c.Hint != "" {
		sb.WriteString("\nhint: " + c.Hint)
	}
	return sb.String()
}

// indentLike returns whitespace that occupies the same columns as s,
// keeping tabs so the marker lines up in a terminal.
func indentLike(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func firstLine(s string) string {
	i := strings.IndexByte(s, '\n')
	if i == -1 {
		return s
	}
	return s[:i]
}

func lastLine(s string) string {
	// When s does not contain '\n', LastIndexByte returns -1, which happens to
	// be what we want.
	return s[strings.LastIndexByte(s, '\n')+1:]
}
