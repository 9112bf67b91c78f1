package timetable

import "errors"

var (
	// ErrTableNotFound indicates the table id is unknown.
	ErrTableNotFound = errors.New("table not found")
	// ErrScheduleNotFound indicates no schedule exists at the given index.
	ErrScheduleNotFound = errors.New("schedule not found")
	// ErrOutOfGrid indicates a move would leave the weekly grid.
	ErrOutOfGrid = errors.New("schedule outside grid")
)
