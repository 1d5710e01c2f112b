package compose

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type nodeKind int

const (
	kindText nodeKind = iota
	kindColumn
	kindRow
	kindBox
	kindClip
	kindScope
)

// Node is one element of a composed layout. Nodes are immutable once
// returned from a content function; layout happens in Render.
type Node struct {
	kind     nodeKind
	text     string
	style    *lipgloss.Style
	children []*Node
	align    lipgloss.Position
	offset   int
	height   int
	scope    *scope
}

// Text is unstyled text. Embedded newlines produce multiple lines.
func Text(s string) *Node {
	return &Node{kind: kindText, text: s}
}

// Styled is text rendered with style.
func Styled(style lipgloss.Style, s string) *Node {
	return &Node{kind: kindText, text: s, style: &style}
}

// Column stacks children vertically, left aligned. Nil children are skipped.
func Column(children ...*Node) *Node {
	return &Node{kind: kindColumn, children: children, align: lipgloss.Left}
}

// CenteredColumn stacks children vertically, centered horizontally.
func CenteredColumn(children ...*Node) *Node {
	return &Node{kind: kindColumn, children: children, align: lipgloss.Center}
}

// Row places children side by side, centered vertically.
func Row(children ...*Node) *Node {
	return &Node{kind: kindRow, children: children, align: lipgloss.Center}
}

// TopRow places children side by side, aligned to the top.
func TopRow(children ...*Node) *Node {
	return &Node{kind: kindRow, children: children, align: lipgloss.Top}
}

// Box renders child and wraps it with style (borders, padding, colors).
func Box(style lipgloss.Style, child *Node) *Node {
	return &Node{kind: kindBox, children: []*Node{child}, style: &style}
}

// Clip shows exactly height lines of child starting at line offset. Lines
// outside the child are rendered empty.
func Clip(child *Node, offset, height int) *Node {
	return &Node{kind: kindClip, children: []*Node{child}, offset: offset, height: height}
}

// Spacer is a vertical gap of the given number of empty lines.
func Spacer(lines int) *Node {
	if lines <= 0 {
		return nil
	}
	return Text(strings.Repeat("\n", lines-1))
}

// Gap is a horizontal gap of the given width.
func Gap(width int) *Node {
	if width <= 0 {
		return nil
	}
	return Text(strings.Repeat(" ", width))
}

func scopeRef(s *scope) *Node {
	return &Node{kind: kindScope, scope: s}
}

// Height returns the number of lines n occupies once rendered.
func Height(n *Node) int {
	if n == nil {
		return 0
	}
	return lipgloss.Height(Render(n))
}

// Width returns the printable width of n once rendered.
func Width(n *Node) int {
	if n == nil {
		return 0
	}
	return lipgloss.Width(Render(n))
}

// Render lays out n and returns the terminal string.
func Render(n *Node) string {
	if n == nil {
		return ""
	}
	switch n.kind {
	case kindText:
		if n.style != nil {
			return n.style.Render(n.text)
		}
		return n.text
	case kindColumn:
		parts := renderChildren(n.children)
		if len(parts) == 0 {
			return ""
		}
		return lipgloss.JoinVertical(n.align, parts...)
	case kindRow:
		parts := renderChildren(n.children)
		if len(parts) == 0 {
			return ""
		}
		return lipgloss.JoinHorizontal(n.align, parts...)
	case kindBox:
		return n.style.Render(Render(n.children[0]))
	case kindClip:
		return clip(Render(n.children[0]), n.offset, n.height)
	case kindScope:
		if n.scope == nil {
			return ""
		}
		return Render(n.scope.node)
	}
	return ""
}

func renderChildren(children []*Node) []string {
	parts := make([]string, 0, len(children))
	for _, c := range children {
		if c == nil {
			continue
		}
		parts = append(parts, Render(c))
	}
	return parts
}

func clip(s string, offset, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	out := make([]string, height)
	for i := range out {
		j := offset + i
		if j >= 0 && j < len(lines) {
			out[i] = lines[j]
		}
	}
	return strings.Join(out, "\n")
}
