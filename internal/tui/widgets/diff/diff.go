package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

var (
	delLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	addLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	delChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Underline(true)
	addChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"}).Underline(true)
	faint   = lipgloss.NewStyle().Faint(true)
)

// Frames compares two consecutive plain status lines character by character.
// Equal frames produce a single faint line; otherwise a "-" line for before
// and a "+" line for after with the changed spans underlined.
func Frames(before, after string) []string {
	if before == after {
		return []string{"  " + faint.Render(after)}
	}
	d := dmp.New()
	diffs := d.DiffMain(before, after, false)
	d.DiffCleanupSemantic(diffs)

	var del, add strings.Builder
	del.WriteString(delLine.Render("- "))
	add.WriteString(addLine.Render("+ "))
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffDelete:
			del.WriteString(delChar.Render(df.Text))
		case dmp.DiffInsert:
			add.WriteString(addChar.Render(df.Text))
		case dmp.DiffEqual:
			del.WriteString(delLine.Render(df.Text))
			add.WriteString(addLine.Render(df.Text))
		}
	}
	return []string{del.String(), add.String()}
}

// Distance is the number of runes inserted, deleted or substituted between
// the two frames.
func Distance(before, after string) int {
	d := dmp.New()
	return d.DiffLevenshtein(d.DiffMain(before, after, false))
}

// Header summarises a comparison for the pane title.
func Header(before, after string) string {
	n := Distance(before, after)
	if n == 0 {
		return "frame diff: no changes"
	}
	return fmt.Sprintf("frame diff: %d cell(s) changed", n)
}
