// Package testserver runs the full HTTP stack against a throwaway database
// for end-to-end tests.
package testserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/coursegrid/internal/domain/catalog"
	"github.com/rpggio/coursegrid/internal/domain/lecture"
	"github.com/rpggio/coursegrid/internal/domain/timetable"
	"github.com/rpggio/coursegrid/internal/export"
	"github.com/rpggio/coursegrid/internal/mcp"
	"github.com/rpggio/coursegrid/internal/sqlite"
	"github.com/rpggio/coursegrid/internal/transport"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Loader   *catalog.Loader
	Tables   *timetable.Registry
	Token    string
	TenantID string
}

// Partition is the single catalog partition the test server reads.
var Partition = catalog.Partition{ID: "majors", Path: "/schedules-majors.json"}

// New starts a server whose catalog is lectures, with bearer auth enabled and
// token registered for tenantID.
func New(t *testing.T, token, tenantID string, lectures []lecture.Lecture) *TestServer {
	t.Helper()

	db, err := sqlite.New(filepath.Join(t.TempDir(), "coursegrid.db"))
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	lectureRepo := sqlite.NewLectureRepository(db)
	if len(lectures) > 0 {
		_, err := lectureRepo.ReplacePartition(context.Background(), Partition.ID, lectures)
		require.NoError(t, err)
	}
	apiKeys := sqlite.NewAPIKeyRepository(db)

	loader := catalog.NewLoader(lectureRepo, []catalog.Partition{Partition}, nil)
	tables := timetable.NewRegistry("", nil)
	term := export.Term{
		Start:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2026, 6, 19, 0, 0, 0, 0, time.UTC),
		Location: time.UTC,
	}
	handler := mcp.NewHandler(mcp.Services{
		Catalog: loader,
		Tables:  tables,
		Export:  export.NewService(term, nil),
	}, nil)

	mcpServer := mcp.NewServer(mcp.Config{
		Handler:       handler,
		Resolver:      apiKeys,
		AuthEnabled:   true,
		TransportMode: "http",
	})
	streamable := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{Stateless: true},
	)

	server := httptest.NewServer(transport.NewServer(handler, transport.Options{
		Auth: transport.AuthMiddleware(apiKeys),
		MCP:  streamable,
	}))

	ts := &TestServer{
		Server:   server,
		DB:       db,
		Loader:   loader,
		Tables:   tables,
		Token:    token,
		TenantID: tenantID,
	}

	require.NoError(t, ts.AddAPIKey(token, tenantID))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

func (ts *TestServer) AddAPIKey(token, tenantID string) error {
	return sqlite.NewAPIKeyRepository(ts.DB).Add(context.Background(), token, tenantID, "test")
}

// RPCResponse is a decoded JSON-RPC response with the result left raw.
type RPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	ID      any             `json:"id,omitempty"`
}

type RPCError struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// Call posts a JSON-RPC request to /rpc with the server's token.
func (ts *TestServer) Call(t *testing.T, method string, params any) RPCResponse {
	t.Helper()
	return ts.CallAs(t, ts.Token, method, params)
}

// CallAs posts a JSON-RPC request to /rpc with the given token.
func (ts *TestServer) CallAs(t *testing.T, token, method string, params any) RPCResponse {
	t.Helper()

	payload := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"id":      1,
	}
	if params != nil {
		payload["params"] = params
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/rpc", bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status 200, got %d. Body: %s", resp.StatusCode, string(bodyBytes))
	}

	var result RPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

// Decode unmarshals a successful result into out.
func Decode[T any](t *testing.T, resp RPCResponse) T {
	t.Helper()
	require.Nil(t, resp.Error, "rpc error: %+v", resp.Error)
	var out T
	require.NoError(t, json.Unmarshal(resp.Result, &out))
	return out
}

// bearerTransport adds an Authorization header to every request.
type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (b bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return b.base.RoundTrip(req)
}

// ConnectMCP opens an MCP client session against /mcp using token.
func (ts *TestServer) ConnectMCP(t *testing.T, token string) *sdkmcp.ClientSession {
	t.Helper()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: &http.Client{Transport: bearerTransport{token: token, base: http.DefaultTransport}},
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}
