// Package api exposes the deployment, inventory, and device-config
// services over HTTP.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/spatium-net/spatium/pkg/deploy"
	"github.com/spatium-net/spatium/pkg/device"
	"github.com/spatium-net/spatium/pkg/inventory"
	"github.com/spatium-net/spatium/pkg/version"
)

// Server routes HTTP requests to the underlying services. It implements
// http.Handler; lifecycle (listen, shutdown) belongs to the caller.
type Server struct {
	router    *mux.Router
	deploy    *deploy.Service
	inventory *inventory.Service
	fetcher   *device.Fetcher
	outputDir string
}

// NewServer wires the services into a routed handler.
func NewServer(deploySvc *deploy.Service, inv *inventory.Service, fetcher *device.Fetcher, outputDir string) *Server {
	s := &Server{
		router:    mux.NewRouter().StrictSlash(true),
		deploy:    deploySvc,
		inventory: inv,
		fetcher:   fetcher,
		outputDir: outputDir,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(requestIDMiddleware)
	s.router.Use(loggingMiddleware)
	s.router.Use(metricsMiddleware)

	s.router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", metricsHandler()).Methods(http.MethodGet)

	d := s.router.PathPrefix("/deployment").Subrouter()
	d.HandleFunc("/deploy", s.handleDeploy).Methods(http.MethodPost)
	d.HandleFunc("/destroy/{name}", s.handleDestroy).Methods(http.MethodDelete)
	d.HandleFunc("/list", s.handleListDeployments).Methods(http.MethodGet)
	d.HandleFunc("/status/{name}", s.handleTopologyStatus).Methods(http.MethodGet)
	d.HandleFunc("/files", s.handleListTopologyFiles).Methods(http.MethodGet)
	d.HandleFunc("/files/{name}", s.handleDeleteTopologyFile).Methods(http.MethodDelete)

	i := s.router.PathPrefix("/inventory").Subrouter()
	i.HandleFunc("/add", s.handleInventoryAdd).Methods(http.MethodPost)
	i.HandleFunc("/remove", s.handleInventoryRemove).Methods(http.MethodPost)
	i.HandleFunc("/clear", s.handleInventoryClear).Methods(http.MethodPost)
	i.HandleFunc("/list", s.handleInventoryList).Methods(http.MethodGet)
	i.HandleFunc("/names", s.handleInventoryNames).Methods(http.MethodGet)
	i.HandleFunc("/stats", s.handleInventoryStats).Methods(http.MethodGet)

	c := s.router.PathPrefix("/configs").Subrouter()
	c.HandleFunc("/get", s.handleConfigsGet).Methods(http.MethodPost)
	c.HandleFunc("/save", s.handleConfigsSave).Methods(http.MethodPost)
	c.HandleFunc("/device", s.handleConfigsDevice).Methods(http.MethodPost)
	c.HandleFunc("/test-connectivity", s.handleTestConnectivity).Methods(http.MethodPost)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, serviceInfo{
		Service: "spatium",
		Version: version.Version,
		Status:  "running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
