package mcp

import (
	"context"
	"encoding/json"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, server *sdkmcp.Server) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func textOf(t *testing.T, res *sdkmcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "unexpected content %T", res.Content[0])
	return text.Text
}

func TestServer_ToolCalls(t *testing.T) {
	ctx := context.Background()
	h := newTestHandler(newCatalogStub())
	session := connect(t, NewServer(Config{Handler: h, TransportMode: "stdio"}))

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"search_lectures", "list_majors", "reload_catalog",
		"list_tables", "get_table", "add_lecture", "remove_schedule",
		"duplicate_table", "remove_table", "move_schedule", "export_table",
	}, names)

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "add_lecture",
		Arguments: map[string]any{"lecture_id": "CS101"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError, textOf(t, res))

	var added AddLectureResponse
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &added))
	require.Equal(t, 2, added.Added)

	// Stdio calls land on the default tenant.
	schedules, err := h.tables.For(DefaultTenant).Schedules(added.TableID)
	require.NoError(t, err)
	require.Len(t, schedules, 2)

	res, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "remove_table",
		Arguments: map[string]any{"table_id": "missing"},
	})
	require.NoError(t, err)
	require.True(t, res.IsError)

	var apiErr APIError
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &apiErr))
	require.Equal(t, CodeTableNotFound, apiErr.Code)
}

func TestServer_DocResources(t *testing.T) {
	ctx := context.Background()
	session := connect(t, NewServer(Config{Handler: newTestHandler(newCatalogStub()), TransportMode: "stdio"}))

	resources, err := session.ListResources(ctx, nil)
	require.NoError(t, err)
	require.Len(t, resources.Resources, len(docResources))

	read, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "coursegrid://docs/grid-layout"})
	require.NoError(t, err)
	require.Len(t, read.Contents, 1)
	require.Contains(t, read.Contents[0].Text, "80px")
}

type denyResolver struct{}

func (denyResolver) ResolveTenant(context.Context, string) (string, error) {
	return "", nil
}

func TestServer_AuthRequiresBearerToken(t *testing.T) {
	ctx := context.Background()
	session := connect(t, NewServer(Config{
		Handler:       newTestHandler(newCatalogStub()),
		Resolver:      denyResolver{},
		AuthEnabled:   true,
		TransportMode: "http",
	}))

	_, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "list_tables",
		Arguments: map[string]any{},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unauthorized")
}
