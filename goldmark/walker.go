package goldmark

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark/ast"
)

// walker renders one parsed document into buf.
type walker struct {
	r      *Renderer
	source []byte
	width  int
	buf    bytes.Buffer
}

func (w *walker) blocks(node ast.Node) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		w.block(c)
		if c.NextSibling() != nil {
			w.buf.WriteString("\n")
		}
	}
}

func (w *walker) block(node ast.Node) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		w.wrapped(w.inline(n), w.width)

	case *ast.Heading:
		w.wrapped(w.r.heading.Render(w.inline(n)), w.width)

	case *ast.List:
		w.list(n, 0)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		gutter := w.r.muted.Render("│") + " "
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			w.buf.WriteString(gutter + strings.TrimRight(string(line.Value(w.source)), "\n") + "\n")
		}

	case *ast.Blockquote:
		inner := &walker{r: w.r, source: w.source, width: max(w.width-2, 10)}
		inner.blocks(n)
		bar := w.r.muted.Render("▎") + " "
		for _, line := range strings.Split(strings.TrimRight(inner.buf.String(), "\n"), "\n") {
			w.buf.WriteString(bar + line + "\n")
		}

	case *ast.ThematicBreak:
		w.buf.WriteString(w.r.muted.Render(strings.Repeat("─", min(w.width, 40))) + "\n")

	case *ast.HTMLBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			w.buf.Write(line.Value(w.source))
		}

	default:
		w.blocks(node)
	}
}

func (w *walker) wrapped(s string, width int) {
	w.buf.WriteString(lipgloss.NewStyle().Width(width).Render(s))
	w.buf.WriteString("\n")
}

func (w *walker) list(n *ast.List, depth int) {
	num := n.Start
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "• "
		if n.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		indent := strings.Repeat("  ", depth)

		var text strings.Builder
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch in := ic.(type) {
			case *ast.List:
				if text.Len() > 0 {
					w.item(indent, marker, text.String())
					text.Reset()
				}
				w.list(in, depth+1)
				marker = strings.Repeat(" ", len(marker))
			default:
				if text.Len() > 0 {
					text.WriteString(" ")
				}
				text.WriteString(w.inline(in))
			}
		}
		if text.Len() > 0 {
			w.item(indent, marker, text.String())
		}
	}
}

// item writes one list entry, aligning continuation lines under the text.
func (w *walker) item(indent, marker, content string) {
	prefix := indent + marker
	width := max(w.width-lipgloss.Width(prefix), 10)
	lines := strings.Split(lipgloss.NewStyle().Width(width).Render(content), "\n")
	pad := strings.Repeat(" ", lipgloss.Width(prefix))
	for i, line := range lines {
		if i == 0 {
			w.buf.WriteString(prefix + line + "\n")
			continue
		}
		w.buf.WriteString(pad + line + "\n")
	}
}

func (w *walker) inline(node ast.Node) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		w.inlineNode(c, &buf)
	}
	return buf.String()
}

func (w *walker) inlineNode(node ast.Node, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(w.source))
		switch {
		case n.HardLineBreak():
			buf.WriteByte('\n')
		case n.SoftLineBreak():
			// Answers use single newlines as line breaks, not reflow points.
			buf.WriteByte('\n')
		}

	case *ast.String:
		buf.Write(n.Value)

	case *ast.Emphasis:
		inner := w.inline(n)
		if n.Level == 1 {
			buf.WriteString(w.r.italic.Render(inner))
		} else {
			buf.WriteString(w.r.bold.Render(inner))
		}

	case *ast.CodeSpan:
		buf.WriteString(w.r.bold.Render(w.inline(n)))

	case *ast.Link:
		label := w.inline(n)
		dest := w.r.resolve(string(n.Destination))
		buf.WriteString(w.r.link.Render(label))
		if label != dest {
			buf.WriteString(" " + w.r.muted.Render("("+dest+")"))
		}

	case *ast.AutoLink:
		buf.WriteString(w.r.link.Render(string(n.URL(w.source))))

	case *ast.Image:
		buf.WriteString(w.r.muted.Render("[" + w.inline(n) + "]"))

	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(w.source))
		}

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			w.inlineNode(c, buf)
		}
	}
}
