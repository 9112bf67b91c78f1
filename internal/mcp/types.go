package mcp

import (
	"github.com/rpggio/coursegrid/internal/domain/catalog"
	"github.com/rpggio/coursegrid/internal/domain/grid"
	"github.com/rpggio/coursegrid/internal/domain/lecture"
	"github.com/rpggio/coursegrid/internal/domain/search"
	"github.com/rpggio/coursegrid/internal/domain/timetable"
)

type SearchLecturesParams struct {
	Query    string   `json:"query,omitempty" jsonschema:"case-insensitive substring of the title or lecture id"`
	Credits  int      `json:"credits,omitempty" jsonschema:"credit choice: 1, 2, 3 or 4 for 4 and above"`
	Grades   []int    `json:"grades,omitempty" jsonschema:"school years to include"`
	Days     []string `json:"days,omitempty" jsonschema:"weekday labels such as 월 or 화"`
	Times    []int    `json:"times,omitempty" jsonschema:"slot ids from 1 to 24"`
	Majors   []string `json:"majors,omitempty" jsonschema:"exact major values from list_majors"`
	Page     int      `json:"page,omitempty" jsonschema:"page to return, starting at 1"`
	PageSize int      `json:"page_size,omitempty" jsonschema:"lectures per page"`
	X        *int     `json:"x,omitempty" jsonschema:"grid pixel x; with y seeds the day and time facets from that cell"`
	Y        *int     `json:"y,omitempty" jsonschema:"grid pixel y"`
}

func (p SearchLecturesParams) options() search.Options {
	return search.Options{
		Query:   p.Query,
		Credits: p.Credits,
		Grades:  p.Grades,
		Days:    p.Days,
		Times:   p.Times,
		Majors:  p.Majors,
	}
}

type LectureResponse struct {
	lecture.Lecture
	Entries []lecture.ScheduleEntry `json:"entries"`
}

type SearchLecturesResponse struct {
	Options  search.Options    `json:"options"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	LastPage int               `json:"last_page"`
	PageSize int               `json:"page_size"`
	Lectures []LectureResponse `json:"lectures"`
}

type ListMajorsParams struct{}

type MajorResponse struct {
	Major string `json:"major"`
	Label string `json:"label"`
	Tag   string `json:"tag"`
}

type ListMajorsResponse struct {
	Majors  []MajorResponse    `json:"majors"`
	Credits []search.Choice    `json:"credits"`
	Grades  []int              `json:"grades"`
	Days    []string           `json:"days"`
	Slots   []lecture.TimeSlot `json:"slots"`
}

type ListTablesParams struct{}

type ListTablesResponse struct {
	Tables    []timetable.TableInfo `json:"tables"`
	CanRemove bool                  `json:"can_remove"`
}

type GetTableParams struct {
	TableID      string `json:"table_id,omitempty" jsonschema:"table to read; defaults to the first table"`
	ActiveDragID string `json:"active_drag_id,omitempty" jsonschema:"drag id of the block being dragged, for highlighting"`
}

type PlacedSchedule struct {
	Index   int              `json:"index"`
	DragID  string           `json:"drag_id"`
	Day     string           `json:"day"`
	Range   []int            `json:"range"`
	Room    string           `json:"room,omitempty"`
	Lecture *lecture.Lecture `json:"lecture"`
	Rect    *grid.Rect       `json:"rect,omitempty"`
	Color   string           `json:"color"`
}

type GetTableResponse struct {
	ID          string           `json:"id"`
	Version     uint64           `json:"version"`
	Highlighted bool             `json:"highlighted"`
	Schedules   []PlacedSchedule `json:"schedules"`
}

type AddLectureParams struct {
	TableID   string `json:"table_id,omitempty" jsonschema:"target table; defaults to the first table"`
	LectureID string `json:"lecture_id" jsonschema:"lecture id from search_lectures"`
}

type AddLectureResponse struct {
	TableID string `json:"table_id"`
	Added   int    `json:"added"`
}

type RemoveScheduleParams struct {
	TableID string `json:"table_id,omitempty" jsonschema:"table to edit; defaults to the first table"`
	Day     string `json:"day" jsonschema:"weekday label of the clicked cell"`
	Time    int    `json:"time" jsonschema:"slot id of the clicked cell"`
}

type RemoveScheduleResponse struct {
	TableID string `json:"table_id"`
	Removed int    `json:"removed"`
}

type DuplicateTableParams struct {
	TableID string `json:"table_id" jsonschema:"table to copy"`
}

type DuplicateTableResponse struct {
	SourceID string `json:"source_id"`
	TableID  string `json:"table_id"`
}

type RemoveTableParams struct {
	TableID string `json:"table_id" jsonschema:"table to remove"`
}

type RemoveTableResponse struct {
	TableID string `json:"table_id"`
	Removed bool   `json:"removed"`
}

type MoveScheduleParams struct {
	DragID string `json:"drag_id" jsonschema:"drag id from get_table"`
	DX     int    `json:"dx" jsonschema:"horizontal drag translation in pixels"`
	DY     int    `json:"dy" jsonschema:"vertical drag translation in pixels"`
}

type MoveScheduleResponse struct {
	TableID   string `json:"table_id"`
	Index     int    `json:"index"`
	DayDelta  int    `json:"day_delta"`
	SlotDelta int    `json:"slot_delta"`
}

type ExportTableParams struct {
	TableID string `json:"table_id,omitempty" jsonschema:"table to export; all tables when empty"`
	Format  string `json:"format" jsonschema:"xlsx or ics"`
}

type ExportTableResponse struct {
	Format   string `json:"format"`
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}

type ReloadCatalogParams struct{}

type ReloadCatalogResponse struct {
	State    catalog.State `json:"state"`
	Lectures int           `json:"lectures"`
}
