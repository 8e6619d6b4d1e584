package device

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/spatium-net/spatium/pkg/model"
)

func testDevice(t *testing.T, srv *httptest.Server) model.Device {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	port, _ := strconv.Atoi(u.Port())
	return model.Device{
		Host:     u.Hostname(),
		Port:     port,
		Username: "admin",
		Password: "secret",
	}
}

func TestRESTGetConfigStructured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/config" {
			http.NotFound(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"PORT": map[string]interface{}{"Ethernet0": map[string]interface{}{"admin_status": "up"}}})
	}))
	defer srv.Close()

	c := NewRESTClient(testDevice(t, srv), false, 5*time.Second)
	body, err := c.GetConfig(context.Background(), "/api/config")
	if err != nil {
		t.Fatalf("GetConfig: %v", err)
	}

	m, ok := body.Structured()
	if !ok {
		t.Fatal("body should be structured JSON")
	}
	if _, ok := m["PORT"]; !ok {
		t.Errorf("decoded body = %v", m)
	}
	if !strings.Contains(body.Text(), "admin_status") {
		t.Errorf("Text() = %q", body.Text())
	}
}

func TestRESTGetConfigRawText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("interface Ethernet0\n  no shutdown\n"))
	}))
	defer srv.Close()

	c := NewRESTClient(testDevice(t, srv), false, 5*time.Second)
	body, err := c.GetConfig(context.Background(), "/api/config")
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := body.Structured(); ok {
		t.Error("plain text should not report as structured")
	}
	if !strings.Contains(body.Text(), "no shutdown") {
		t.Errorf("Text() = %q", body.Text())
	}
}

func TestRESTGetConfigHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewRESTClient(testDevice(t, srv), false, 5*time.Second)
	if _, err := c.GetConfig(context.Background(), "/api/config"); err == nil {
		t.Fatal("expected error for HTTP 500")
	} else if !strings.Contains(err.Error(), "500") {
		t.Errorf("error = %v, want status code mention", err)
	}
}

func TestRESTProbeStopsAtFirstHit(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/api/system/version" {
			json.NewEncoder(w).Encode(map[string]interface{}{"version": "4.0"})
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewRESTClient(testDevice(t, srv), false, 5*time.Second)
	body, ok := c.VersionInfo(context.Background())
	if !ok {
		t.Fatal("probe should have found /api/system/version")
	}
	if !strings.Contains(body.Text(), "4.0") {
		t.Errorf("version body = %q", body.Text())
	}
	// First candidate misses, second hits, rest untried.
	if len(paths) != 2 || paths[1] != "/api/system/version" {
		t.Errorf("probed paths = %v", paths)
	}
}

func TestRESTProbeExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	c := NewRESTClient(testDevice(t, srv), false, 5*time.Second)
	if _, ok := c.VersionInfo(context.Background()); ok {
		t.Error("probe reported success with no endpoint answering")
	}
}

func TestRESTBearerTokenReplacesBasicAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewRESTClient(testDevice(t, srv), false, 5*time.Second).WithToken("tok123")
	if _, err := c.GetConfig(context.Background(), "/api/config"); err != nil {
		t.Fatalf("token auth rejected: %v", err)
	}
}

func TestRESTTestConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	c := NewRESTClient(testDevice(t, srv), false, 5*time.Second)
	if err := c.TestConnection(context.Background()); err != nil {
		t.Errorf("reachable device reported unreachable: %v", err)
	}

	srv.Close()
	if err := c.TestConnection(context.Background()); err == nil {
		t.Error("closed server reported reachable")
	}
}
