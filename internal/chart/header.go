package chart

import "time"

// HeaderGridLineHeight is the grid line height used to size the header band.
const HeaderGridLineHeight = 8

// Header is the label shown above the plot while a stored entry is highlighted.
type Header struct {
	Visible bool
	Text    string
	Frame   Rect
}

// Update shows the time of entry, or hides the header when ok is false.
// Entries on the same calendar day as now read "Today 3:04PM".
func (hd *Header) Update(entry Entry, ok bool, now time.Time, width, contentTop float64) {
	if !ok || entry == nil {
		hd.Visible = false
		return
	}
	hd.Visible = true
	hd.Frame = Rect{Right: width, Bottom: contentTop + HeaderGridLineHeight*2}
	hd.Text = FormatHeaderTime(TimeFromX(entry.XValue()), now)
}

// FormatHeaderTime formats t relative to the day of now.
func FormatHeaderTime(t, now time.Time) string {
	t = t.In(now.Location())
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	if ty == ny && tm == nm && td == nd {
		return "Today " + t.Format("3:04PM")
	}
	return t.Format("Mon 01/02 3:04PM")
}
