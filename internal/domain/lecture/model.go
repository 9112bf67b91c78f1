package lecture

// Lecture is one course record from the catalog. Records are immutable once
// fetched and may be shared between tables.
type Lecture struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Grade    int    `json:"grade"`
	Credits  string `json:"credits"`
	Major    string `json:"major"`
	Schedule string `json:"schedule"`
}

// ScheduleEntry is one day/slot-range/room unit derived from a lecture's
// schedule notation.
type ScheduleEntry struct {
	Day   string `json:"day"`
	Range []int  `json:"range"`
	Room  string `json:"room,omitempty"`
}

// Start returns the first slot of the entry.
func (e ScheduleEntry) Start() int {
	if len(e.Range) == 0 {
		return 0
	}
	return e.Range[0]
}

// Covers reports whether slot is part of the entry's range.
func (e ScheduleEntry) Covers(slot int) bool {
	for _, s := range e.Range {
		if s == slot {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no memory with e.
func (e ScheduleEntry) Clone() ScheduleEntry {
	out := e
	out.Range = append([]int(nil), e.Range...)
	return out
}

// TimeSlot labels one discrete period of the weekly grid.
type TimeSlot struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}
