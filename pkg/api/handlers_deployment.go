package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/spatium-net/spatium/pkg/deploy"
	"github.com/spatium-net/spatium/pkg/model"
	"github.com/spatium-net/spatium/pkg/util"
)

// handleDeploy validates and deploys a topology. Tool and validation
// failures are reported inside the deployment envelope; only an
// undecodable body is a request-level error.
func (s *Server) handleDeploy(w http.ResponseWriter, r *http.Request) {
	var cfg model.TopologyConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid topology config: "+err.Error())
		return
	}
	for i := range cfg.Nodes {
		if cfg.Nodes[i].Kind == "" {
			cfg.Nodes[i].Kind = model.DefaultNodeKind
		}
	}
	if err := deploy.ValidateConfig(&cfg); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	util.WithTopology(cfg.Name).Infof("deploying topology with %d nodes", len(cfg.Nodes))
	writeJSON(w, http.StatusOK, s.deploy.Deploy(r.Context(), &cfg))
}

func (s *Server) handleDestroy(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	resp := s.deploy.Destroy(r.Context(), name)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListDeployments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deploy.ListDeployments(r.Context()))
}

func (s *Server) handleTopologyStatus(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	writeJSON(w, http.StatusOK, s.deploy.TopologyStatus(r.Context(), name))
}

func (s *Server) handleListTopologyFiles(w http.ResponseWriter, r *http.Request) {
	files := s.deploy.ListTopologyFiles()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"files":   files,
		"count":   len(files),
	})
}

func (s *Server) handleDeleteTopologyFile(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := s.deploy.DeleteTopologyFile(name); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "topology file deleted: " + name,
	})
}
