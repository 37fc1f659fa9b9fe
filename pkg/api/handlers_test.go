package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mktdata/mktverify/pkg/codec"
	"github.com/mktdata/mktverify/pkg/history"
	"github.com/mktdata/mktverify/pkg/verify"
)

type fakeStore struct {
	runs  []*history.Run
	putEr error
}

func (f *fakeStore) RecordRun(reports []*verify.Report, passed bool) (*history.Run, error) {
	if f.putEr != nil {
		return nil, f.putEr
	}
	run := &history.Run{
		ID:      fmt.Sprintf("run-%03d", len(f.runs)+1),
		Passed:  passed,
		Reports: reports,
	}
	f.runs = append(f.runs, run)
	return run, nil
}

func (f *fakeStore) GetRun(id string) (*history.Run, error) {
	for _, run := range f.runs {
		if run.ID == id {
			return run, nil
		}
	}
	return nil, history.ErrRunNotFound
}

func (f *fakeStore) ListRuns(limit int) ([]*history.Run, error) {
	runs := f.runs
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func newTestServer(store RunStore) *Server {
	verifier := verify.NewVerifier(verify.DefaultVerifierConfig(), nil)
	return NewServer(store, verifier, ServerConfig{})
}

// writeValidCapture builds a small valid capture file on disk.
func writeValidCapture(t *testing.T, n int, payload float64) string {
	t.Helper()

	hc := codec.NewHeaderCodec()
	rc := codec.NewRecordCodec()

	buf := hc.Encode(&codec.FileHeader{
		Magic:    codec.FileMagic,
		Version:  codec.FileVersion,
		Flags:    codec.FlagComplete,
		MsgCount: int64(n),
		FirstSeq: 0,
		LastSeq:  int64(n - 1),
	})
	for i := 0; i < n; i++ {
		buf = append(buf, rc.Encode(codec.Record{SeqNum: int64(i), Payload: payload})...)
	}

	path := filepath.Join(t.TempDir(), "capture.bin")
	require.NoError(t, os.WriteFile(path, buf, 0644))
	return path
}

func doRequest(t *testing.T, server *Server, method, target string, body []byte) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer(&fakeStore{})

	rec, resp := doRequest(t, server, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
}

func TestHandleVerify(t *testing.T) {
	path := writeValidCapture(t, 100, 5.0)
	store := &fakeStore{}
	server := newTestServer(store)

	body, _ := json.Marshal(VerifyRequest{Path: path})
	rec, resp := doRequest(t, server, http.MethodPost, "/api/v1/verify", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	require.Len(t, store.runs, 1)
	assert.True(t, store.runs[0].Passed)
	require.Len(t, store.runs[0].Reports, 1)
	assert.Equal(t, 500.0, store.runs[0].Reports[0].Sum)
}

func TestHandleVerify_WithExpectedSum(t *testing.T) {
	path := writeValidCapture(t, 100, 5.0)
	store := &fakeStore{}
	server := newTestServer(store)

	expected := 400.0
	body, _ := json.Marshal(VerifyRequest{Path: path, ExpectedSum: &expected})
	rec, _ := doRequest(t, server, http.MethodPost, "/api/v1/verify", body)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.runs, 1)
	assert.False(t, store.runs[0].Passed)
	require.NotNil(t, store.runs[0].Reports[0].Comparison)
	assert.False(t, store.runs[0].Reports[0].Comparison.Passed)
}

func TestHandleVerify_BadRequests(t *testing.T) {
	server := newTestServer(&fakeStore{})

	rec, resp := doRequest(t, server, http.MethodPost, "/api/v1/verify", []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)

	body, _ := json.Marshal(VerifyRequest{})
	rec, resp = doRequest(t, server, http.MethodPost, "/api/v1/verify", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp.Error, "Path is required")
}

func TestHandleVerify_MissingFileStillRecorded(t *testing.T) {
	// A nonexistent path is a failed verification, not an API error.
	store := &fakeStore{}
	server := newTestServer(store)

	body, _ := json.Marshal(VerifyRequest{Path: "no/such/file.bin"})
	rec, _ := doRequest(t, server, http.MethodPost, "/api/v1/verify", body)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.runs, 1)
	assert.False(t, store.runs[0].Passed)
}

func TestHandleGetRun(t *testing.T) {
	store := &fakeStore{}
	store.RecordRun([]*verify.Report{{Path: "a.bin"}}, true)
	server := newTestServer(store)

	rec, resp := doRequest(t, server, http.MethodGet, "/api/v1/runs/run-001", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	rec, resp = doRequest(t, server, http.MethodGet, "/api/v1/runs/run-999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, resp.Error, "not found")
}

func TestHandleListRuns(t *testing.T) {
	store := &fakeStore{}
	for i := 0; i < 3; i++ {
		store.RecordRun([]*verify.Report{{Path: "a.bin"}}, true)
	}
	server := newTestServer(store)

	rec, resp := doRequest(t, server, http.MethodGet, "/api/v1/runs?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	runs, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, runs, 2)

	rec, _ = doRequest(t, server, http.MethodGet, "/api/v1/runs?limit=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
