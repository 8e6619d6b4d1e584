// Package device retrieves configuration from network devices over SSH,
// REST, or the SONiC CONFIG_DB via an SSH-forwarded Redis connection.
package device

import "strings"

// DefaultModel is assumed when a device record names no model.
const DefaultModel = "sonic"

// configCommands maps a device model to the CLI command that prints its
// running configuration.
var configCommands = map[string]string{
	"sonic":      "show running-configuration",
	"cisco":      "show running-config",
	"cisco_ios":  "show running-config",
	"cisco_nxos": "show running-config",
	"cisco_xe":   "show running-config",
	"cisco_asa":  "show running-config",
	"arista":     "show running-config",
	"nokia":      "show running-configuration",
	"juniper":    "show configuration",
	"huawei":     "display current-configuration",
	"mikrotik":   "export",
	"fortinet":   "show full-configuration",
	"paloalto":   "show config running",
	"f5":         "tmsh show running-config",
	"aruba":      "show running-config",
	"cumulus":    "show running-config",
	"vyos":       "show configuration",
	"linux":      "cat /etc/network/interfaces",
	"ubuntu":     "cat /etc/netplan/*.yaml",
	"debian":     "cat /etc/network/interfaces",
	"openwrt":    "cat /etc/config/network",
}

// restEndpoints maps a device model to the REST path that serves its
// configuration.
var restEndpoints = map[string]string{
	"sonic":      "/api/config",
	"cisco":      "/restconf/data/Cisco-IOS-XE-native:native",
	"cisco_ios":  "/restconf/data/Cisco-IOS-XE-native:native",
	"cisco_nxos": "/ins",
	"cisco_xe":   "/restconf/data/Cisco-IOS-XE-native:native",
	"cisco_asa":  "/api/config",
	"arista":     "/command-api",
	"nokia":      "/api/running-config",
	"juniper":    "/rpc/get-configuration",
	"huawei":     "/restconf/data/huawei-configuration:configuration",
	"mikrotik":   "/rest/configuration/export",
	"fortinet":   "/api/v2/monitor/system/config/backup",
	"paloalto":   "/api/?type=export&category=configuration",
	"f5":         "/mgmt/tm/sys/config",
	"aruba":      "/v1/configuration/running-config",
	"cumulus":    "/api/config/running-config",
	"vyos":       "/rest/configuration",
	"linux":      "/api/config/network",
	"ubuntu":     "/api/config/netplan",
	"debian":     "/api/config/network",
	"openwrt":    "/api/config/network",
}

// Probe paths tried in order when a device exposes no dedicated endpoint
// for version or interface state.
var (
	versionEndpoints = []string{
		"/api/version",
		"/api/system/version",
		"/rest/version",
		"/restconf/data/system-state/platform",
	}
	interfaceEndpoints = []string{
		"/api/interfaces",
		"/api/system/interfaces",
		"/rest/interfaces",
		"/restconf/data/interfaces",
	}
)

// sonicConfigDBCommand is the fallback when the model's show command
// produces no output. SONiC keeps the full config as JSON on disk.
const sonicConfigDBCommand = "cat /etc/sonic/config_db.json"

// ConfigCommand returns the show command for a model, defaulting to the
// SONiC command for unknown models.
func ConfigCommand(deviceModel string) string {
	if cmd, ok := configCommands[strings.ToLower(deviceModel)]; ok {
		return cmd
	}
	return configCommands[DefaultModel]
}

// RESTEndpoint returns the config endpoint for a model, defaulting to the
// SONiC endpoint for unknown models.
func RESTEndpoint(deviceModel string) string {
	if ep, ok := restEndpoints[strings.ToLower(deviceModel)]; ok {
		return ep
	}
	return restEndpoints[DefaultModel]
}
