package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `coursegrid builds weekly university timetables from a shared lecture catalog.

Core concepts:
- Lecture: one catalog course (id, title, grade, credits, major, schedule notation).
- Schedule: one day + slot range (+ optional room) of a lecture, placed on a table.
- Table: a named weekly grid (6 days x 24 slots). Tables are private to the caller.
- Drag id: "<table_id>:<index>" names one placed schedule; get_table returns them.

Default workflow:
1) Browse: list_majors for filter choices, then search_lectures (page through with page).
   Pass x/y pixel coordinates to search only lectures that meet at that grid cell.
2) Build: add_lecture places every meeting of a lecture; overlaps are allowed.
3) Inspect: get_table returns placed blocks with pixel rects and colours.
4) Edit: remove_schedule clears a cell; move_schedule snaps a drag to whole cells.
5) Compare: duplicate_table copies a table; remove_table drops one (never the last).
6) Share: export_table as xlsx or ics.

Docs:
- coursegrid://docs/schedule-notation
- coursegrid://docs/grid-layout
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "coursegrid://docs/schedule-notation",
		Name:        "docs_schedule_notation",
		Title:       "Schedule notation",
		Description: "How a lecture's schedule string is split into days, slots and rooms.",
		Content: `# Schedule notation

A schedule string lists meetings separated by ` + "`<p>`" + `:

    월1~3(F207)<p>수4

Each meeting is a weekday label followed by slots and an optional room in parentheses.

- Days: 월 화 수 목 금 토.
- Slots: 1 to 24. ` + "`1~3`" + ` is a range, ` + "`1,3,5`" + ` is an enumeration.
- Room: text inside the trailing parentheses, optional.

Meetings that do not parse are skipped. An empty schedule places nothing and is
only excluded from searches that filter by day or time.

Majors use the same separator: ` + "`컴퓨터공학과<p>심화`" + ` is shown as
"컴퓨터공학과 심화" and grouped under the tag after the last separator.
`,
	},
	{
		URI:         "coursegrid://docs/grid-layout",
		Name:        "docs_grid_layout",
		Title:       "Grid layout",
		Description: "Pixel geometry of the weekly grid used by x/y search and move_schedule.",
		Content: `# Grid layout

The grid starts 120px from the left and 40px from the top. Each cell is 80px
wide and 30px tall. Columns are days (월 first), rows are slots (1 first).

A block starting at slot s on day d is placed at
x = 120 + dayIndex*80 + 1, y = 40 + (s-1)*30 + 1 and is 79px wide and
len(range)*30 - 1 px tall.

move_schedule rounds a drag translation to the nearest whole cell. Moves that
would leave the grid are rejected with OUT_OF_GRID.

Blocks are coloured per distinct lecture on a table, cycling
#fdd #ffd #dff #ddf #fdf #dfd in the order lectures were added.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
