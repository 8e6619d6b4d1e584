package device

import (
	"strings"
	"testing"

	"github.com/spatium-net/spatium/pkg/model"
)

func TestConfigCommandLookup(t *testing.T) {
	tests := []struct {
		deviceModel string
		want        string
	}{
		{"sonic", "show running-configuration"},
		{"SONiC", "show running-configuration"},
		{"juniper", "show configuration"},
		{"", "show running-configuration"},
		{"no-such-vendor", "show running-configuration"},
	}
	for _, tt := range tests {
		if got := ConfigCommand(tt.deviceModel); got != tt.want {
			t.Errorf("ConfigCommand(%q) = %q, want %q", tt.deviceModel, got, tt.want)
		}
	}
}

func TestRESTEndpointLookup(t *testing.T) {
	if got := RESTEndpoint("arista"); got != "/command-api" {
		t.Errorf("RESTEndpoint(arista) = %q", got)
	}
	if got := RESTEndpoint("unknown"); got != "/api/config" {
		t.Errorf("unknown model should fall back to the sonic endpoint, got %q", got)
	}
}

func TestPrettyJSON(t *testing.T) {
	got := prettyJSON(`{"PORT":{"Ethernet0":{"admin_status":"up"}}}`)
	if !strings.Contains(got, "\n  \"PORT\"") {
		t.Errorf("JSON not re-indented: %q", got)
	}

	plain := "interface Ethernet0\n  no shutdown"
	if got := prettyJSON(plain); got != plain {
		t.Errorf("non-JSON input changed: %q", got)
	}

	if got := prettyJSON(""); got != "" {
		t.Errorf("empty input changed: %q", got)
	}
}

func TestNewSSHClientDefaults(t *testing.T) {
	c := NewSSHClient(model.Device{Host: "10.0.0.1", Username: "admin", Password: "pw"})
	if c.port != 22 {
		t.Errorf("port = %d, want 22", c.port)
	}
	if c2 := NewSSHClient(model.Device{Host: "10.0.0.1", Port: 2222}); c2.port != 2222 {
		t.Errorf("port = %d, want 2222", c2.port)
	}
}

func TestSSHClientConfigAuth(t *testing.T) {
	cfg, err := sshClientConfig("admin", "pw", "", 0)
	if err != nil {
		t.Fatalf("password auth: %v", err)
	}
	if len(cfg.Auth) != 1 {
		t.Errorf("auth methods = %d, want 1", len(cfg.Auth))
	}

	if _, err := sshClientConfig("admin", "", "", 0); err == nil {
		t.Error("no credentials should be rejected")
	}

	if _, err := sshClientConfig("admin", "", "/nonexistent/key", 0); err == nil {
		t.Error("unreadable key file should be rejected")
	}
}
