package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spatium-net/spatium/pkg/inventory"
	"github.com/spatium-net/spatium/pkg/model"
)

// inventoryName reads the ?inventory= query parameter, defaulting when
// absent.
func inventoryName(r *http.Request) string {
	if name := r.URL.Query().Get("inventory"); name != "" {
		return name
	}
	return inventory.DefaultName
}

// decodeDevices accepts either a single device object or a list of them.
func decodeDevices(r *http.Request) ([]model.Device, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	var list []model.Device
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var single model.Device
	if err := json.Unmarshal(raw, &single); err == nil {
		return []model.Device{single}, nil
	}
	return nil, fmt.Errorf("request body must be a device object or list of device objects")
}

func (s *Server) handleInventoryAdd(w http.ResponseWriter, r *http.Request) {
	name := inventoryName(r)
	devices, err := decodeDevices(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	added := s.inventory.Add(name, devices)
	msg := fmt.Sprintf("added %d device(s) to inventory", len(added))
	if len(added) == 0 {
		msg = "no new devices were added (all devices already exist)"
	}
	writeJSON(w, http.StatusOK, inventoryResponse{
		Success:       true,
		Message:       msg,
		Inventory:     name,
		AffectedHosts: added,
	})
}

func (s *Server) handleInventoryRemove(w http.ResponseWriter, r *http.Request) {
	name := inventoryName(r)
	devices, err := decodeDevices(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	hosts := make([]string, 0, len(devices))
	for _, d := range devices {
		hosts = append(hosts, d.Host)
	}
	removed := s.inventory.Remove(name, hosts)
	writeJSON(w, http.StatusOK, inventoryResponse{
		Success:       true,
		Message:       fmt.Sprintf("removed %d device(s) from inventory", len(removed)),
		Inventory:     name,
		AffectedHosts: removed,
	})
}

func (s *Server) handleInventoryClear(w http.ResponseWriter, r *http.Request) {
	name := inventoryName(r)
	n := s.inventory.Clear(name)
	writeJSON(w, http.StatusOK, inventoryResponse{
		Success:   true,
		Message:   fmt.Sprintf("cleared %d device(s) from inventory", n),
		Inventory: name,
	})
}

func (s *Server) handleInventoryList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.inventory.Get(inventoryName(r)))
}

func (s *Server) handleInventoryNames(w http.ResponseWriter, r *http.Request) {
	names := s.inventory.Names()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"inventories": names,
		"count":       len(names),
	})
}

func (s *Server) handleInventoryStats(w http.ResponseWriter, r *http.Request) {
	name := inventoryName(r)
	stats := s.inventory.GetStats(name)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"inventory": name,
		"stats":     stats,
	})
}
