package timetable

import "github.com/rpggio/coursegrid/internal/domain/lecture"

// DefaultTableID names the table a new store starts with.
const DefaultTableID = "schedule-1"

// Schedule is a schedule entry placed on a table. The lecture is shared
// between tables and treated as read-only; the entry itself belongs to
// exactly one table.
type Schedule struct {
	lecture.ScheduleEntry
	Lecture *lecture.Lecture `json:"lecture"`
}

// Clone copies the entry. The lecture pointer is kept.
func (s Schedule) Clone() Schedule {
	return Schedule{ScheduleEntry: s.ScheduleEntry.Clone(), Lecture: s.Lecture}
}

// TableInfo summarizes one table.
type TableInfo struct {
	ID        string `json:"id"`
	Schedules int    `json:"schedules"`
	Version   uint64 `json:"version"`
}

// FromLecture places every entry of lec's schedule. A lecture whose schedule
// does not parse yields no schedules.
func FromLecture(lec *lecture.Lecture) []Schedule {
	entries := lecture.Parse(lec.Schedule)
	out := make([]Schedule, 0, len(entries))
	for _, e := range entries {
		out = append(out, Schedule{ScheduleEntry: e, Lecture: lec})
	}
	return out
}

func cloneAll(schedules []Schedule) []Schedule {
	out := make([]Schedule, len(schedules))
	for i, s := range schedules {
		out[i] = s.Clone()
	}
	return out
}
