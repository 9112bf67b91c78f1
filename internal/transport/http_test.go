package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type testHandler struct {
	method string
	tenant string
	err    error
}

func (h *testHandler) Handle(_ context.Context, tenantID, method string, params json.RawMessage) (any, error) {
	h.method = method
	h.tenant = tenantID
	if h.err != nil {
		return nil, h.err
	}
	return map[string]string{"tenant": tenantID}, nil
}

type staticResolver struct {
	tenant string
}

func (r *staticResolver) ResolveTenant(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}
	return r.tenant, nil
}

type codedTestError struct {
	code string
}

func (e codedTestError) Error() string             { return e.code }
func (e codedTestError) CodeValue() string         { return e.code }
func (e codedTestError) MessageValue() string      { return "message for " + e.code }
func (e codedTestError) DetailsValue() any         { return nil }
func (e codedTestError) RecoveryHintValue() string { return "try again" }

func postRPC(t *testing.T, url, body, token string) (*http.Response, Response) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url+"/rpc", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var out Response
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestHTTPServer_RPC(t *testing.T) {
	handler := &testHandler{}
	resolver := &staticResolver{tenant: "tenant1"}
	server := httptest.NewServer(NewServer(handler, Options{Auth: AuthMiddleware(resolver)}))
	t.Cleanup(server.Close)

	resp, out := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"list_tables","id":1}`, "token")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Nil(t, out.Error)
	require.Equal(t, "list_tables", handler.method)
	require.Equal(t, "tenant1", handler.tenant)
	require.Equal(t, float64(1), out.ID)
}

func TestHTTPServer_RPCRequiresAuth(t *testing.T) {
	handler := &testHandler{}
	server := httptest.NewServer(NewServer(handler, Options{Auth: AuthMiddleware(&staticResolver{tenant: "tenant1"})}))
	t.Cleanup(server.Close)

	resp, _ := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"list_tables","id":1}`, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Empty(t, handler.method)
}

func TestHTTPServer_RPCWithoutTenant(t *testing.T) {
	server := httptest.NewServer(NewServer(&testHandler{}, Options{}))
	t.Cleanup(server.Close)

	resp, _ := postRPC(t, server.URL, `{"jsonrpc":"2.0","method":"list_tables","id":1}`, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHTTPServer_RPCErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantData string
	}{
		{name: "malformed", body: `{"jsonrpc":`, wantCode: ErrParseCode},
		{name: "not jsonrpc", body: `{"jsonrpc":"1.0","method":"x","id":1}`, wantCode: ErrInvalidReq},
		{name: "unknown method", body: `{"jsonrpc":"2.0","method":"x","id":1}`, err: codedTestError{code: "METHOD_NOT_FOUND"}, wantCode: ErrMethodNotFound, wantData: "METHOD_NOT_FOUND"},
		{name: "bad params", body: `{"jsonrpc":"2.0","method":"x","id":1}`, err: codedTestError{code: "INVALID_PARAMS"}, wantCode: ErrInvalidParams, wantData: "INVALID_PARAMS"},
		{name: "domain", body: `{"jsonrpc":"2.0","method":"x","id":1}`, err: codedTestError{code: "TABLE_NOT_FOUND"}, wantCode: ErrApplication, wantData: "TABLE_NOT_FOUND"},
		{name: "internal", body: `{"jsonrpc":"2.0","method":"x","id":1}`, err: errors.New("disk on fire"), wantCode: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &testHandler{err: tt.err}
			server := httptest.NewServer(NewServer(handler, Options{Auth: StaticTenant("tenant1")}))
			t.Cleanup(server.Close)

			resp, out := postRPC(t, server.URL, tt.body, "")
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.NotNil(t, out.Error)
			require.Equal(t, tt.wantCode, out.Error.Code)
			if tt.wantData != "" {
				data, ok := out.Error.Data.(map[string]any)
				require.True(t, ok)
				require.Equal(t, tt.wantData, data["code"])
				require.Equal(t, "try again", data["recovery_hint"])
			}
		})
	}
}

func TestHTTPServer_Health(t *testing.T) {
	handler := &testHandler{}
	server := httptest.NewServer(NewServer(handler, Options{Auth: AuthMiddleware(&staticResolver{})}))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPServer_MountsMCP(t *testing.T) {
	mcp := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	server := httptest.NewServer(NewServer(&testHandler{}, Options{MCP: mcp}))
	t.Cleanup(server.Close)

	resp, err := http.Post(server.URL+"/mcp", "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
}
