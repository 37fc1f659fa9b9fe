package api

import (
	"github.com/mktdata/mktverify/pkg/history"
	"github.com/mktdata/mktverify/pkg/verify"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// VerifyRequest asks the server to verify a capture file it can reach.
type VerifyRequest struct {
	Path        string   `json:"path"`
	ExpectedSum *float64 `json:"expected_sum,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port int
	Bind string
}

// RunStore defines the history operations the server depends on
type RunStore interface {
	RecordRun(reports []*verify.Report, passed bool) (*history.Run, error)
	GetRun(id string) (*history.Run, error)
	ListRuns(limit int) ([]*history.Run, error)
}
