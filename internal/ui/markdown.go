package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const wrapBreakpoints = " ,.;-+|/"

var markdownParser = goldmark.New()

// renderMarkdown renders the subset of markdown used by the built-in docs:
// headings, paragraphs, nested lists, emphasis, code spans and code blocks.
// Soft line breaks reflow to width.
func renderMarkdown(input string, theme Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := markdownParser.Parser().Parse(text.NewReader(source))

	// Always ANSI256: output goes into the TUI, never a pipe, and tests
	// run without a TTY.
	lip := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lip.SetColorProfile(termenv.ANSI256)

	r := &mdRenderer{source: source, theme: theme, width: width, lip: lip}
	_ = ast.Walk(document, r.walk)
	return strings.TrimRight(r.out.String(), "\n")
}

type mdList struct {
	ordered bool
	counter int
}

type mdRenderer struct {
	source []byte
	theme  Theme
	width  int
	lip    *lipgloss.Renderer

	out    strings.Builder
	inline strings.Builder

	indent      int   // columns of leading space for wrapped lines
	widths      []int // indent added by each open list item
	bullet      string
	bulletWidth int
	lists       []mdList
	bold        int
	italic      int
	newline     int // trailing newlines in out
}

func (r *mdRenderer) write(s string) {
	if s == "" {
		return
	}
	r.out.WriteString(s)
	trailing := len(s) - len(strings.TrimRight(s, "\n"))
	if trailing == len(s) {
		r.newline += trailing
	} else {
		r.newline = trailing
	}
}

func (r *mdRenderer) blankLine() {
	if r.out.Len() == 0 {
		return
	}
	for r.newline < 2 {
		r.write("\n")
	}
}

func (r *mdRenderer) endLine() {
	if r.newline < 1 {
		r.write("\n")
	}
}

func (r *mdRenderer) style() lipgloss.Style {
	s := r.lip.NewStyle().Foreground(lipgloss.Color(r.theme.Text))
	if r.bold > 0 {
		s = s.Bold(true).Foreground(lipgloss.Color(r.theme.Warning))
	}
	if r.italic > 0 {
		s = s.Italic(true)
	}
	return s
}

// flush wraps the inline buffer and writes it with the current indent.
func (r *mdRenderer) flush() {
	content := r.inline.String()
	r.inline.Reset()
	if content == "" {
		return
	}
	pad := strings.Repeat(" ", r.indent)
	wrapped := ansi.Wrap(content, max(r.width-r.indent, 10), wrapBreakpoints)
	for i, line := range strings.Split(wrapped, "\n") {
		prefix := pad
		if i == 0 && r.bullet != "" {
			prefix = strings.Repeat(" ", r.indent-r.bulletWidth) + r.bullet
			r.bullet = ""
		}
		r.write(prefix + line + "\n")
	}
}

func (r *mdRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := node.(type) {
	case *ast.Heading:
		if entering {
			r.inline.Reset()
			return ast.WalkContinue, nil
		}
		content := ansi.Strip(r.inline.String())
		r.inline.Reset()
		color := r.theme.Accent
		if n.Level > 1 {
			color = r.theme.Info
		}
		r.blankLine()
		r.write(r.lip.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(content) + "\n")
		if n.Level == 1 {
			rule := strings.Repeat("─", min(ansi.StringWidth(content), r.width))
			r.write(r.lip.NewStyle().Foreground(lipgloss.Color(r.theme.Border)).Render(rule) + "\n")
		}
		r.blankLine()

	case *ast.Paragraph, *ast.TextBlock:
		if !entering {
			r.flush()
			if len(r.lists) == 0 {
				r.blankLine()
			}
		}

	case *ast.List:
		if entering {
			r.lists = append(r.lists, mdList{ordered: n.IsOrdered(), counter: n.Start})
		} else {
			r.lists = r.lists[:len(r.lists)-1]
			if len(r.lists) == 0 {
				r.blankLine()
			}
		}

	case *ast.ListItem:
		if len(r.lists) == 0 {
			return ast.WalkContinue, nil
		}
		top := &r.lists[len(r.lists)-1]
		if entering {
			r.flush()
			bullet := "•"
			if top.ordered {
				bullet = fmt.Sprintf("%d.", top.counter)
				top.counter++
			}
			width := ansi.StringWidth(bullet) + 1
			r.bullet = r.lip.NewStyle().Foreground(lipgloss.Color(r.theme.Accent)).Render(bullet) + " "
			r.bulletWidth = width
			r.indent += width
			r.widths = append(r.widths, width)
		} else {
			r.flush()
			r.indent -= r.widths[len(r.widths)-1]
			r.widths = r.widths[:len(r.widths)-1]
			r.endLine()
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			r.codeBlock(node)
		}
		return ast.WalkSkipChildren, nil

	case *ast.Text:
		if entering {
			r.inline.WriteString(r.style().Render(string(n.Segment.Value(r.source))))
			if n.SoftLineBreak() {
				r.inline.WriteString(" ")
			}
			if n.HardLineBreak() {
				r.inline.WriteString("\n")
			}
		}

	case *ast.String:
		if entering {
			r.inline.WriteString(r.style().Render(string(n.Value)))
		}

	case *ast.Emphasis:
		delta := 1
		if !entering {
			delta = -1
		}
		if n.Level >= 2 {
			r.bold += delta
		} else {
			r.italic += delta
		}

	case *ast.CodeSpan:
		if entering {
			var code strings.Builder
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					code.Write(t.Segment.Value(r.source))
				}
			}
			r.inline.WriteString(r.lip.NewStyle().Foreground(lipgloss.Color(r.theme.Success)).Render(code.String()))
		}
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (r *mdRenderer) codeBlock(node ast.Node) {
	var code strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(r.source))
	}
	style := r.lip.NewStyle().Foreground(lipgloss.Color(r.theme.Success))
	pad := strings.Repeat(" ", r.indent+2)
	r.blankLine()
	for _, line := range strings.Split(strings.TrimRight(code.String(), "\n"), "\n") {
		r.write(pad + style.Render(line) + "\n")
	}
	r.blankLine()
}
