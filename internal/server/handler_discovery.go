package server

import "net/http"

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, discoveryResponse{
		Name:        "langparse API",
		Version:     "v1",
		Description: "Workflow descriptor validation and secondary file discovery for Nextflow and WDL",
		Endpoints: []endpointInfo{
			{"/api/v1/languages/nextflow/parse", []string{"POST"}, "Validate a Nextflow config and list its secondary files"},
			{"/api/v1/languages/wdl/parse", []string{"POST"}, "Validate a WDL descriptor and list its imports"},
			{"/api/v1/resolutions", []string{"GET"}, "Resolution history. Accepts ?language=, ?limit= and ?offset="},
			{"/api/v1/resolutions/{id}", []string{"GET"}, "Single resolution record"},
			{"/api/v1/health", []string{"GET"}, "Server health and version"},
		},
	})
}
