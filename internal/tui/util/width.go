package util

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const ansiReset = "\x1b[0m"

// sgrPattern matches one styling sequence: ESC [ params m.
var sgrPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// escapeMask marks the bytes of s that belong to styling sequences. Removal is
// repeated until nothing matches, so a sequence that only appears once an
// inner one is gone ("\x1b[\x1b[0mm") is masked as well. Unterminated
// sequences are never masked.
func escapeMask(s string) []bool {
	mask := make([]bool, len(s))
	if strings.IndexByte(s, 0x1b) < 0 {
		return mask
	}
	idx := make([]int, len(s))
	for i := range idx {
		idx[i] = i
	}
	buf := make([]byte, 0, len(s))
	for {
		buf = buf[:0]
		for _, i := range idx {
			buf = append(buf, s[i])
		}
		locs := sgrPattern.FindAllIndex(buf, -1)
		if len(locs) == 0 {
			return mask
		}
		next := make([]int, 0, len(idx))
		l := 0
		for j, i := range idx {
			for l < len(locs) && j >= locs[l][1] {
				l++
			}
			if l < len(locs) && j >= locs[l][0] {
				mask[i] = true
				continue
			}
			next = append(next, i)
		}
		idx = next
	}
}

// Strip removes styling sequences and leaves every other byte in order.
func Strip(s string) string {
	if strings.IndexByte(s, 0x1b) < 0 {
		return s
	}
	mask := escapeMask(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if !mask[i] {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// VisibleWidth counts the cells s occupies: the runes left after Strip.
// Every rune is assumed to be one cell wide.
func VisibleWidth(s string) int {
	return utf8.RuneCountInString(Strip(s))
}

// TruncateVisible cuts s to at most width visible cells. Styling sequences
// are kept wherever they occur, and a reset is appended when any were kept.
func TruncateVisible(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if VisibleWidth(s) <= width {
		return s
	}
	mask := escapeMask(s)

	// Decode over the visible bytes only, so the cut lands on the same rune
	// boundary VisibleWidth counts with.
	vis := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if !mask[i] {
			vis = append(vis, s[i])
		}
	}
	keep := 0
	for n := 0; n < width && keep < len(vis); n++ {
		_, size := utf8.DecodeRune(vis[keep:])
		keep += size
	}

	var b strings.Builder
	styled := false
	seen := 0
	for i := 0; i < len(s); i++ {
		if mask[i] {
			b.WriteByte(s[i])
			styled = true
			continue
		}
		if seen < keep {
			b.WriteByte(s[i])
		}
		seen++
	}
	if styled {
		b.WriteString(ansiReset)
	}
	return b.String()
}
