package statusbar

import (
	"strings"

	"zj-status/internal/tui/util"
)

// Compose lays the segments out over exactly cols visible cells.
//
// With a center segment the center straddles the midpoint when it can. A
// center that does not fit next to left and right is dropped. When left and
// right alone are wider than cols, the line is cut at cols cells.
func Compose(left Segment, center *Segment, right Segment, cols int) string {
	if cols <= 0 {
		return ""
	}
	if center != nil && left.Width+center.Width+right.Width <= cols {
		lp := max(cols/2-left.Width-center.Width/2, 0)
		rp := cols - left.Width - lp - center.Width - right.Width
		if rp < 0 {
			lp += rp
			rp = 0
		}
		return left.Text + spaces(lp) + center.Text + spaces(rp) + right.Text
	}

	if pad := cols - left.Width - right.Width; pad >= 0 {
		return left.Text + spaces(pad) + right.Text
	}
	return util.TruncateVisible(left.Text+right.Text, cols)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
