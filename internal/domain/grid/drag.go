package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rpggio/coursegrid/internal/domain/timetable"
)

// DragSeparator joins the table id and schedule index of a drag handle.
const DragSeparator = ":"

// ErrInvalidDragID indicates a drag identifier that does not decode.
var ErrInvalidDragID = errors.New("invalid drag id")

// DragID identifies one draggable schedule block: the table that owns it and
// its index in that table.
type DragID struct {
	TableID string
	Index   int
}

// String encodes the id as "tableId:index".
func (d DragID) String() string {
	return d.TableID + DragSeparator + strconv.Itoa(d.Index)
}

// ParseDragID decodes an id produced by DragID.String. The index is taken
// after the last separator, so table ids may themselves contain one.
func ParseDragID(s string) (DragID, error) {
	i := strings.LastIndex(s, DragSeparator)
	if i <= 0 {
		return DragID{}, fmt.Errorf("%w: %q", ErrInvalidDragID, s)
	}
	idx, err := strconv.Atoi(s[i+len(DragSeparator):])
	if err != nil || idx < 0 {
		return DragID{}, fmt.Errorf("%w: %q", ErrInvalidDragID, s)
	}
	return DragID{TableID: s[:i], Index: idx}, nil
}

// ActiveTable returns the table that owns the block being dragged, or "" when
// nothing is dragged or the id is malformed.
func ActiveTable(activeID string) string {
	if activeID == "" {
		return ""
	}
	d, err := ParseDragID(activeID)
	if err != nil {
		return ""
	}
	return d.TableID
}

// Highlighted reports whether tableID should be outlined while activeID is
// being dragged. At most one table matches: the owner of the dragged block.
func Highlighted(activeID, tableID string) bool {
	active := ActiveTable(activeID)
	return active != "" && active == tableID
}

// Palette is the block background cycle, assigned per distinct lecture.
var Palette = []string{"#fdd", "#ffd", "#dff", "#ddf", "#fdf", "#dfd"}

// ColorFor returns the background of lectureID's blocks on a table: the
// palette entry at the lecture's position among the table's distinct
// lectures, in first-placed order. Unknown lectures get the first colour.
func ColorFor(schedules []timetable.Schedule, lectureID string) string {
	seen := make(map[string]struct{})
	n := 0
	for _, s := range schedules {
		if s.Lecture == nil {
			continue
		}
		id := s.Lecture.ID
		if _, ok := seen[id]; ok {
			continue
		}
		if id == lectureID {
			return Palette[n%len(Palette)]
		}
		seen[id] = struct{}{}
		n++
	}
	return Palette[0]
}
