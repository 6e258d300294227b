package parsetree

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
)

// Render returns an indented rendering of the tree, one node per line.
func Render(t *Tree) (string, error) {
	if t.Size() == 0 {
		return "", nil
	}
	var items pterm.LeveledList
	t.Walk(func(n Node, depth int) bool {
		items = append(items, pterm.LeveledListItem{Level: depth, Text: label(n)})
		return true
	})
	root := pterm.NewTreeFromLeveledList(items)
	return pterm.DefaultTree.WithRoot(root).Srender()
}

// RenderTable returns the father/sibling table of the tree.
func RenderTable(t *Tree) (string, error) {
	data := pterm.TableData{{"Index", "Symbol", "Value", "Father", "Sibling"}}
	for _, row := range t.Rows() {
		data = append(data, []string{
			strconv.Itoa(row.ID),
			row.Symbol,
			orDash(row.Value),
			idOrDash(row.Father),
			idOrDash(row.Sibling),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func label(n Node) string {
	var l string
	if n.Value != "" {
		l = fmt.Sprintf("%s = %q  #%d", n.Symbol, n.Value, n.ID)
	} else {
		l = fmt.Sprintf("%s  #%d", n.Symbol, n.ID)
	}
	if !n.Span.IsNull() {
		l = fmt.Sprintf("%s  @%d…%d", l, n.Span.From(), n.Span.To())
	}
	return l
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func idOrDash(id int) string {
	if id == NoNode {
		return "-"
	}
	return strconv.Itoa(id)
}
