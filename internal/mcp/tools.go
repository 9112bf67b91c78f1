package mcp

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools exposes every handler method as an MCP tool.
func registerTools(server *sdkmcp.Server, h *Handler) {
	// Catalog
	addTool(server, "search_lectures",
		"Filter the lecture catalog by query, credits, grades, days, times and majors. Returns one page of results; pass x/y to seed day and time from a grid cell.",
		h.SearchLectures)
	addTool(server, "list_majors",
		"List the filter choices: every major in the catalog plus the credit, grade, day and slot options",
		h.ListMajors)
	addTool(server, "reload_catalog",
		"Discard the cached catalog and fetch every partition again",
		h.ReloadCatalog)

	// Tables
	addTool(server, "list_tables",
		"List timetables in display order with their schedule counts",
		h.ListTables)
	addTool(server, "get_table",
		"Get a timetable's schedules with grid placement, colour and drag id",
		h.GetTable)
	addTool(server, "add_lecture",
		"Place every schedule entry of a lecture on a table. Overlaps are allowed.",
		h.AddLecture)
	addTool(server, "remove_schedule",
		"Remove every schedule on a table that covers the given day and time",
		h.RemoveSchedule)
	addTool(server, "duplicate_table",
		"Copy a table; the copy is inserted right after the source",
		h.DuplicateTable)
	addTool(server, "remove_table",
		"Remove a table. The last remaining table cannot be removed.",
		h.RemoveTable)
	addTool(server, "move_schedule",
		"Move a dragged block by a pixel translation, snapped to whole cells",
		h.MoveSchedule)

	// Export
	addTool(server, "export_table",
		"Export one table or all tables as an xlsx workbook (base64) or an ics calendar",
		h.ExportTable)
}

func addTool[In, Out any](server *sdkmcp.Server, name, description string, call func(context.Context, string, In) (Out, error)) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: name, Description: description},
		func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
			out, err := call(ctx, getTenantID(ctx), in)
			if err != nil {
				return errorResult(err), nil, nil
			}
			return jsonResult(out), nil, nil
		})
}

func jsonResult(v any) *sdkmcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult(err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}

func errorResult(err error) *sdkmcp.CallToolResult {
	apiErr := MapError(err)
	if apiErr == nil {
		apiErr = &APIError{Code: CodeInternal, Message: err.Error()}
	}
	data, _ := json.Marshal(apiErr)
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}
