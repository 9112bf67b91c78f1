package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rpggio/coursegrid/internal/domain/catalog"
	"github.com/rpggio/coursegrid/internal/domain/grid"
	"github.com/rpggio/coursegrid/internal/domain/lecture"
	"github.com/rpggio/coursegrid/internal/domain/search"
	"github.com/rpggio/coursegrid/internal/domain/timetable"
	"github.com/rpggio/coursegrid/internal/export"
)

// Catalog defines the lecture catalog operations needed by MCP.
type Catalog interface {
	FetchAll(ctx context.Context) ([]lecture.Lecture, error)
	Lookup(ctx context.Context, id string) (*lecture.Lecture, error)
	Reset()
	State() catalog.State
}

// Tables hands out the timetable store of a tenant.
type Tables interface {
	For(tenantID string) *timetable.Store
}

// Exporter renders tables as documents.
type Exporter interface {
	XLSX(tables []export.Table) ([]byte, error)
	ICS(tables []export.Table) ([]byte, error)
}

// Services contains everything the tool surface reads or mutates.
type Services struct {
	Catalog  Catalog
	Tables   Tables
	Export   Exporter
	Layout   grid.Layout
	PageSize int
}

// Handler dispatches MCP commands.
type Handler struct {
	catalog  Catalog
	tables   Tables
	export   Exporter
	layout   grid.Layout
	pageSize int
	logger   *slog.Logger
}

// NewHandler creates a new MCP handler.
func NewHandler(svc Services, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	layout := svc.Layout
	if layout == (grid.Layout{}) {
		layout = grid.DefaultLayout
	}
	pageSize := svc.PageSize
	if pageSize <= 0 {
		pageSize = search.DefaultPageSize
	}
	return &Handler{
		catalog:  svc.Catalog,
		tables:   svc.Tables,
		export:   svc.Export,
		layout:   layout,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Handle dispatches a method call by name. It backs the JSON-RPC endpoint.
func (h *Handler) Handle(ctx context.Context, tenantID, method string, params json.RawMessage) (any, error) {
	switch method {
	case "search_lectures":
		return dispatch(ctx, h.SearchLectures, tenantID, params)
	case "list_majors":
		return dispatch(ctx, h.ListMajors, tenantID, params)
	case "list_tables":
		return dispatch(ctx, h.ListTables, tenantID, params)
	case "get_table":
		return dispatch(ctx, h.GetTable, tenantID, params)
	case "add_lecture":
		return dispatch(ctx, h.AddLecture, tenantID, params)
	case "remove_schedule":
		return dispatch(ctx, h.RemoveSchedule, tenantID, params)
	case "duplicate_table":
		return dispatch(ctx, h.DuplicateTable, tenantID, params)
	case "remove_table":
		return dispatch(ctx, h.RemoveTable, tenantID, params)
	case "move_schedule":
		return dispatch(ctx, h.MoveSchedule, tenantID, params)
	case "export_table":
		return dispatch(ctx, h.ExportTable, tenantID, params)
	case "reload_catalog":
		return dispatch(ctx, h.ReloadCatalog, tenantID, params)
	default:
		return nil, &APIError{Code: CodeMethodNotFound, Message: fmt.Sprintf("unknown method: %s", method)}
	}
}

func dispatch[In, Out any](ctx context.Context, call func(context.Context, string, In) (Out, error), tenantID string, params json.RawMessage) (any, error) {
	var req In
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	out, err := call(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return invalidParams("decode params: %v", err)
	}
	return nil
}

// SearchLectures filters the catalog and returns one page of results.
func (h *Handler) SearchLectures(ctx context.Context, _ string, req SearchLecturesParams) (*SearchLecturesResponse, error) {
	all, err := h.catalog.FetchAll(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	size := req.PageSize
	if size <= 0 {
		size = h.pageSize
	}

	opts := req.options()
	var sess *search.Session
	if req.X != nil || req.Y != nil {
		if req.X == nil || req.Y == nil {
			return nil, invalidParams("x and y must be given together")
		}
		day, slot, ok := h.layout.CellAt(*req.X, *req.Y)
		if !ok {
			return nil, &APIError{Code: CodeOutOfGrid, Message: fmt.Sprintf("no cell at (%d, %d)", *req.X, *req.Y)}
		}
		sess = search.NewSessionAt(all, size, day, slot)
		seeded := sess.Options()
		if len(opts.Days) == 0 {
			opts.Days = seeded.Days
		}
		if len(opts.Times) == 0 {
			opts.Times = seeded.Times
		}
	} else {
		sess = search.NewSession(all, size)
	}
	sess.SetOptions(opts)

	for sess.Page() < req.Page && sess.Page() < sess.LastPage() {
		sess.LoadMore()
	}

	page := search.PageOf(sess.Results(), sess.Page(), size)
	lectures := make([]LectureResponse, 0, len(page))
	for _, lec := range page {
		lectures = append(lectures, LectureResponse{Lecture: lec, Entries: lecture.Parse(lec.Schedule)})
	}
	return &SearchLecturesResponse{
		Options:  sess.Options(),
		Total:    sess.Total(),
		Page:     sess.Page(),
		LastPage: sess.LastPage(),
		PageSize: size,
		Lectures: lectures,
	}, nil
}

// ListMajors returns the facet choices, including every major in the catalog.
func (h *Handler) ListMajors(ctx context.Context, _ string, _ ListMajorsParams) (*ListMajorsResponse, error) {
	all, err := h.catalog.FetchAll(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	majors := search.AllMajors(all)
	resp := &ListMajorsResponse{
		Majors:  make([]MajorResponse, 0, len(majors)),
		Credits: search.CreditChoices,
		Grades:  search.GradeChoices,
		Days:    lecture.Days(),
		Slots:   lecture.Slots(),
	}
	for _, m := range majors {
		resp.Majors = append(resp.Majors, MajorResponse{Major: m, Label: search.MajorLabel(m), Tag: search.MajorTag(m)})
	}
	return resp, nil
}

func (h *Handler) ListTables(_ context.Context, tenantID string, _ ListTablesParams) (*ListTablesResponse, error) {
	store := h.tables.For(tenantID)
	return &ListTablesResponse{Tables: store.Tables(), CanRemove: store.CanRemoveTable()}, nil
}

// GetTable returns a table's schedules placed on the grid.
func (h *Handler) GetTable(_ context.Context, tenantID string, req GetTableParams) (*GetTableResponse, error) {
	store := h.tables.For(tenantID)
	tableID := defaultTable(store, req.TableID)
	schedules, version, err := store.Snapshot(tableID)
	if err != nil {
		return nil, mapError(err)
	}

	placed := make([]PlacedSchedule, 0, len(schedules))
	for i, sc := range schedules {
		p := PlacedSchedule{
			Index:   i,
			DragID:  grid.DragID{TableID: tableID, Index: i}.String(),
			Day:     sc.Day,
			Range:   sc.Range,
			Room:    sc.Room,
			Lecture: sc.Lecture,
		}
		if rect, ok := h.layout.Place(sc.ScheduleEntry); ok {
			p.Rect = &rect
		}
		if sc.Lecture != nil {
			p.Color = grid.ColorFor(schedules, sc.Lecture.ID)
		} else {
			p.Color = grid.Palette[0]
		}
		placed = append(placed, p)
	}
	return &GetTableResponse{
		ID:          tableID,
		Version:     version,
		Highlighted: grid.Highlighted(req.ActiveDragID, tableID),
		Schedules:   placed,
	}, nil
}

// AddLecture places every schedule entry of a lecture on a table.
func (h *Handler) AddLecture(ctx context.Context, tenantID string, req AddLectureParams) (*AddLectureResponse, error) {
	if req.LectureID == "" {
		return nil, invalidParams("lecture_id is required")
	}
	lec, err := h.catalog.Lookup(ctx, req.LectureID)
	if err != nil {
		return nil, mapError(err)
	}
	store := h.tables.For(tenantID)
	tableID := defaultTable(store, req.TableID)
	added, err := store.AddLecture(tableID, lec)
	if err != nil {
		return nil, mapError(err)
	}
	h.logger.Debug("lecture added", "tenant_id", tenantID, "table_id", tableID, "lecture_id", lec.ID, "schedules", len(added))
	return &AddLectureResponse{TableID: tableID, Added: len(added)}, nil
}

// RemoveSchedule removes every schedule covering the given cell.
func (h *Handler) RemoveSchedule(_ context.Context, tenantID string, req RemoveScheduleParams) (*RemoveScheduleResponse, error) {
	if req.Day == "" || req.Time == 0 {
		return nil, invalidParams("day and time are required")
	}
	store := h.tables.For(tenantID)
	tableID := defaultTable(store, req.TableID)
	removed, err := store.RemoveAt(tableID, req.Day, req.Time)
	if err != nil {
		return nil, mapError(err)
	}
	return &RemoveScheduleResponse{TableID: tableID, Removed: removed}, nil
}

func (h *Handler) DuplicateTable(_ context.Context, tenantID string, req DuplicateTableParams) (*DuplicateTableResponse, error) {
	if req.TableID == "" {
		return nil, invalidParams("table_id is required")
	}
	id, err := h.tables.For(tenantID).AddTable(req.TableID)
	if err != nil {
		return nil, mapError(err)
	}
	return &DuplicateTableResponse{SourceID: req.TableID, TableID: id}, nil
}

// RemoveTable deletes a table. The last table is kept and reported as not removed.
func (h *Handler) RemoveTable(_ context.Context, tenantID string, req RemoveTableParams) (*RemoveTableResponse, error) {
	if req.TableID == "" {
		return nil, invalidParams("table_id is required")
	}
	removed, err := h.tables.For(tenantID).RemoveTable(req.TableID)
	if err != nil {
		return nil, mapError(err)
	}
	return &RemoveTableResponse{TableID: req.TableID, Removed: removed}, nil
}

// MoveSchedule applies a finished drag to the dragged block.
func (h *Handler) MoveSchedule(_ context.Context, tenantID string, req MoveScheduleParams) (*MoveScheduleResponse, error) {
	drag, err := grid.ParseDragID(req.DragID)
	if err != nil {
		return nil, mapError(err)
	}
	dayDelta, slotDelta := h.layout.MoveDelta(req.DX, req.DY)
	if err := h.tables.For(tenantID).Move(drag.TableID, drag.Index, dayDelta, slotDelta); err != nil {
		return nil, mapError(err)
	}
	return &MoveScheduleResponse{TableID: drag.TableID, Index: drag.Index, DayDelta: dayDelta, SlotDelta: slotDelta}, nil
}

// ExportTable renders one table, or all of them, as xlsx or ics.
func (h *Handler) ExportTable(_ context.Context, tenantID string, req ExportTableParams) (*ExportTableResponse, error) {
	store := h.tables.For(tenantID)
	var ids []string
	if req.TableID != "" {
		ids = []string{req.TableID}
	} else {
		for _, info := range store.Tables() {
			ids = append(ids, info.ID)
		}
	}
	tables := make([]export.Table, 0, len(ids))
	for _, id := range ids {
		schedules, err := store.Schedules(id)
		if err != nil {
			return nil, mapError(err)
		}
		tables = append(tables, export.Table{ID: id, Schedules: schedules})
	}

	name := "timetable"
	if req.TableID != "" {
		name = req.TableID
	}
	switch req.Format {
	case "xlsx":
		data, err := h.export.XLSX(tables)
		if err != nil {
			return nil, mapError(err)
		}
		return &ExportTableResponse{
			Format:   req.Format,
			Filename: name + ".xlsx",
			MIMEType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Encoding: "base64",
			Content:  base64.StdEncoding.EncodeToString(data),
		}, nil
	case "ics":
		data, err := h.export.ICS(tables)
		if err != nil {
			return nil, mapError(err)
		}
		return &ExportTableResponse{
			Format:   req.Format,
			Filename: name + ".ics",
			MIMEType: "text/calendar",
			Encoding: "utf-8",
			Content:  string(data),
		}, nil
	default:
		return nil, invalidParams("unsupported export format %q", req.Format)
	}
}

// ReloadCatalog drops the cached catalog and loads it again.
func (h *Handler) ReloadCatalog(ctx context.Context, tenantID string, _ ReloadCatalogParams) (*ReloadCatalogResponse, error) {
	h.catalog.Reset()
	all, err := h.catalog.FetchAll(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	h.logger.Info("catalog reloaded", "tenant_id", tenantID, "lectures", len(all))
	return &ReloadCatalogResponse{State: h.catalog.State(), Lectures: len(all)}, nil
}

func defaultTable(store *timetable.Store, tableID string) string {
	if tableID != "" {
		return tableID
	}
	if tables := store.Tables(); len(tables) > 0 {
		return tables[0].ID
	}
	return ""
}
