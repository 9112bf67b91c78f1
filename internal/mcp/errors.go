package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/coursegrid/internal/domain/catalog"
	"github.com/rpggio/coursegrid/internal/domain/grid"
	"github.com/rpggio/coursegrid/internal/domain/timetable"
	"github.com/rpggio/coursegrid/internal/export"
)

// Error codes returned to tool callers.
const (
	CodeInvalidParams      = "INVALID_PARAMS"
	CodeMethodNotFound     = "METHOD_NOT_FOUND"
	CodeTableNotFound      = "TABLE_NOT_FOUND"
	CodeScheduleNotFound   = "SCHEDULE_NOT_FOUND"
	CodeOutOfGrid          = "OUT_OF_GRID"
	CodeLectureNotFound    = "LECTURE_NOT_FOUND"
	CodeCatalogUnavailable = "CATALOG_UNAVAILABLE"
	CodeInvalidDragID      = "INVALID_DRAG_ID"
	CodeTermNotConfigured  = "TERM_NOT_CONFIGURED"
	CodeInternal           = "INTERNAL"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) CodeValue() string {
	return e.Code
}

func (e *APIError) MessageValue() string {
	return e.Message
}

func (e *APIError) DetailsValue() any {
	return e.Details
}

func (e *APIError) RecoveryHintValue() string {
	return e.RecoveryHint
}

func invalidParams(format string, args ...any) *APIError {
	return &APIError{Code: CodeInvalidParams, Message: fmt.Sprintf(format, args...)}
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, timetable.ErrTableNotFound):
		return &APIError{Code: CodeTableNotFound, Message: "table not found", RecoveryHint: "Call list_tables for valid ids"}
	case errors.Is(err, timetable.ErrScheduleNotFound):
		return &APIError{Code: CodeScheduleNotFound, Message: "schedule not found", RecoveryHint: "Call get_table for current drag ids"}
	case errors.Is(err, timetable.ErrOutOfGrid):
		return &APIError{Code: CodeOutOfGrid, Message: "position is outside the weekly grid"}
	case errors.Is(err, catalog.ErrLectureNotFound):
		return &APIError{Code: CodeLectureNotFound, Message: "lecture not found", RecoveryHint: "Use an id from search_lectures"}
	case errors.Is(err, catalog.ErrFetchFailed), errors.Is(err, catalog.ErrNoPartitions):
		return &APIError{Code: CodeCatalogUnavailable, Message: err.Error(), RecoveryHint: "Retry or call reload_catalog"}
	case errors.Is(err, grid.ErrInvalidDragID):
		return &APIError{Code: CodeInvalidDragID, Message: err.Error(), RecoveryHint: "Drag ids look like <table_id>:<index>"}
	case errors.Is(err, export.ErrInvalidTerm):
		return &APIError{Code: CodeTermNotConfigured, Message: err.Error(), RecoveryHint: "Set export.term_start and export.term_end"}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
