package api

import (
	"encoding/json"
	"net/http"

	"github.com/spatium-net/spatium/pkg/model"
	"github.com/spatium-net/spatium/pkg/util"
)

// errorResponse is the uniform failure envelope for request-level errors
// (bad input, missing resources). Tool-level failures ride inside the
// operation's own envelope with a 200.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type inventoryResponse struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message"`
	Inventory     string   `json:"inventory"`
	AffectedHosts []string `json:"affected_hosts"`
}

type configResponse struct {
	Success   bool                 `json:"success"`
	Message   string               `json:"message"`
	Inventory string               `json:"inventory"`
	Results   []model.ConfigResult `json:"results"`
	Messages  []string             `json:"messages"`
}

type configSaveResponse struct {
	Success   bool               `json:"success"`
	Message   string             `json:"message"`
	Inventory string             `json:"inventory"`
	Results   []model.SaveResult `json:"results"`
}

type serviceInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		util.Errorf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
