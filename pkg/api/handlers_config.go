package api

import (
	"fmt"
	"net/http"

	"github.com/spatium-net/spatium/pkg/model"
	"github.com/spatium-net/spatium/pkg/util"
)

// inventoryDevices resolves the device set for a configs request: the
// whole inventory, or just the entries matching ?host=.
func (s *Server) inventoryDevices(r *http.Request) (string, []model.Device, string) {
	name := inventoryName(r)
	if host := r.URL.Query().Get("host"); host != "" {
		devices := s.inventory.FilterByHost(name, host)
		if len(devices) == 0 {
			return name, nil, fmt.Sprintf("no device found with host %q in inventory %q", host, name)
		}
		return name, devices, ""
	}

	devices := s.inventory.Get(name)
	if len(devices) == 0 {
		return name, nil, fmt.Sprintf("no devices found in inventory %q", name)
	}
	return name, devices, ""
}

// handleConfigsGet fetches configurations for an inventory. An empty
// inventory is a successful no-op, not an error.
func (s *Server) handleConfigsGet(w http.ResponseWriter, r *http.Request) {
	name, devices, emptyMsg := s.inventoryDevices(r)
	if emptyMsg != "" {
		writeJSON(w, http.StatusOK, configResponse{
			Success:   true,
			Message:   emptyMsg,
			Inventory: name,
			Results:   []model.ConfigResult{},
			Messages:  []string{emptyMsg},
		})
		return
	}

	results := s.fetcher.FetchBulk(r.Context(), devices)
	messages := make([]string, 0, len(results))
	for _, res := range results {
		if res.Error != "" {
			messages = append(messages, fmt.Sprintf("failed to fetch config for %s: %s", res.Host, res.Error))
		} else {
			messages = append(messages, fmt.Sprintf("configuration fetched for %s", res.Host))
		}
	}

	writeJSON(w, http.StatusOK, configResponse{
		Success:   true,
		Message:   fmt.Sprintf("retrieved configurations for %d device(s)", len(results)),
		Inventory: name,
		Results:   results,
		Messages:  messages,
	})
}

// handleConfigsSave fetches configurations and writes them to disk, one
// file per device.
func (s *Server) handleConfigsSave(w http.ResponseWriter, r *http.Request) {
	name, devices, emptyMsg := s.inventoryDevices(r)
	if emptyMsg != "" {
		writeJSON(w, http.StatusOK, configSaveResponse{
			Success:   true,
			Message:   emptyMsg,
			Inventory: name,
			Results:   []model.SaveResult{},
		})
		return
	}

	dir := r.URL.Query().Get("output_folder")
	if dir == "" {
		dir = s.outputDir
	}

	results, err := s.fetcher.SaveConfigs(r.Context(), devices, dir)
	if err != nil {
		util.Errorf("save configs: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ok := 0
	for _, res := range results {
		if res.Error == "" && res.FilePath != "" {
			ok++
		}
	}
	writeJSON(w, http.StatusOK, configSaveResponse{
		Success:   true,
		Message:   fmt.Sprintf("saved configurations for %d/%d device(s)", ok, len(results)),
		Inventory: name,
		Results:   results,
	})
}

// handleConfigsDevice fetches one ad-hoc device without touching the
// inventory.
func (s *Server) handleConfigsDevice(w http.ResponseWriter, r *http.Request) {
	devices, err := decodeDevices(r)
	if err != nil || len(devices) != 1 {
		writeError(w, http.StatusUnprocessableEntity, "request body must be a single device object")
		return
	}
	if devices[0].Host == "" {
		writeError(w, http.StatusUnprocessableEntity, "device host is required")
		return
	}
	writeJSON(w, http.StatusOK, s.fetcher.Fetch(r.Context(), devices[0]))
}

// handleTestConnectivity probes one or more devices over their configured
// methods.
func (s *Server) handleTestConnectivity(w http.ResponseWriter, r *http.Request) {
	devices, err := decodeDevices(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	results := make([]model.ConnectivityResult, 0, len(devices))
	reachable := 0
	for _, d := range devices {
		res := s.fetcher.TestConnectivity(r.Context(), d)
		if res.Connected {
			reachable++
		}
		results = append(results, res)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("%d/%d device(s) reachable", reachable, len(results)),
		"results": results,
	})
}
