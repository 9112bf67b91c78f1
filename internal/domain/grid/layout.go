package grid

import (
	"math"

	"github.com/rpggio/coursegrid/internal/domain/lecture"
)

// Layout holds the fixed pixel geometry of the weekly grid.
type Layout struct {
	LeftMargin int `json:"left_margin"`
	TopMargin  int `json:"top_margin"`
	CellWidth  int `json:"cell_width"`
	CellHeight int `json:"cell_height"`
	Border     int `json:"border"`
}

// DefaultLayout is the geometry of the rendered timetable: a 120px time
// column, a 40px header row, 80x30 cells and a 1px hairline.
var DefaultLayout = Layout{
	LeftMargin: 120,
	TopMargin:  40,
	CellWidth:  80,
	CellHeight: 30,
	Border:     1,
}

// Rect is a placed block in pixels.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Origin returns the top-left pixel of the block starting at startSlot on
// day. ok is false for an unknown day.
func (l Layout) Origin(day string, startSlot int) (x, y int, ok bool) {
	idx := lecture.DayIndex(day)
	if idx < 0 {
		return 0, 0, false
	}
	x = l.LeftMargin + idx*l.CellWidth + l.Border
	y = l.TopMargin + (startSlot-1)*l.CellHeight + l.Border
	return x, y, true
}

// Size returns the pixel size of a block spanning rangeLength slots.
func (l Layout) Size(rangeLength int) (width, height int) {
	return l.CellWidth - l.Border, rangeLength*l.CellHeight - l.Border
}

// Place positions a schedule entry on the grid.
func (l Layout) Place(e lecture.ScheduleEntry) (Rect, bool) {
	if len(e.Range) == 0 {
		return Rect{}, false
	}
	x, y, ok := l.Origin(e.Day, e.Start())
	if !ok {
		return Rect{}, false
	}
	w, h := l.Size(len(e.Range))
	return Rect{X: x, Y: y, Width: w, Height: h}, true
}

// CellAt maps a pixel inside the grid back to its day and slot. ok is false
// for points in the margins or past the last row or column.
func (l Layout) CellAt(x, y int) (day string, slot int, ok bool) {
	if x < l.LeftMargin || y < l.TopMargin {
		return "", 0, false
	}
	col := (x - l.LeftMargin) / l.CellWidth
	row := (y - l.TopMargin) / l.CellHeight
	day, ok = lecture.DayAt(col)
	if !ok || row >= lecture.SlotCount() {
		return "", 0, false
	}
	return day, row + 1, true
}

// MoveDelta converts a drag translation into whole cells, rounding to the
// nearest cell.
func (l Layout) MoveDelta(dx, dy int) (dayDelta, slotDelta int) {
	dayDelta = int(math.Round(float64(dx) / float64(l.CellWidth)))
	slotDelta = int(math.Round(float64(dy) / float64(l.CellHeight)))
	return dayDelta, slotDelta
}
