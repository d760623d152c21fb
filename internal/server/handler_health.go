package server

import (
	"net/http"
	"runtime"
	"strings"
	"time"
)

// Version is the API server version reported by /health.
const Version = "0.1.0"

type healthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	GoVersion string            `json:"go_version"`
	Uptime    string            `json:"uptime"`
	Store     string            `json:"store"`
	Toolchain map[string]string `json:"toolchain"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	storeStatus := "disabled"
	if s.store != nil {
		storeStatus = "sqlite"
	}
	respondOK(w, reqID, healthResponse{
		Status:    "healthy",
		Version:   Version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Store:     storeStatus,
		Toolchain: map[string]string{
			"nextflow": strings.Join(s.config.NextflowCommand, " "),
			"womtool":  strings.Join(s.config.WomtoolCommand, " "),
		},
	})
}
