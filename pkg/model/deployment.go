// Package model defines the request and response shapes shared by the
// deployment service, the device-config services, and the HTTP API.
package model

// DefaultNodeKind is assumed when a request omits the node type.
const DefaultNodeKind = "sonic-vs"

// NodeSpec describes one emulated device in a topology request.
type NodeSpec struct {
	Name string `json:"name" yaml:"name"`
	// Kind is the containerlab node kind (defaults to sonic-vs).
	Kind  string `json:"type" yaml:"type"`
	Image string `json:"image" yaml:"image"`
	// Ports is nil when the caller did not specify port mappings.
	// nil and empty are distinct and both preserved.
	Ports []string `json:"ports,omitempty" yaml:"ports,omitempty"`
}

// LinkSpec connects two nodes. Interface fields may be empty, in which case
// the generated endpoint omits the ":iface" suffix.
type LinkSpec struct {
	Node1      string `json:"node1" yaml:"node1"`
	Interface1 string `json:"interface1,omitempty" yaml:"interface1,omitempty"`
	Node2      string `json:"node2" yaml:"node2"`
	Interface2 string `json:"interface2,omitempty" yaml:"interface2,omitempty"`
}

// TopologyConfig is one deployable unit. It maps 1:1 to a topology file
// named <Name>.yaml in the working directory.
type TopologyConfig struct {
	Name        string     `json:"name" yaml:"name"`
	Nodes       []NodeSpec `json:"nodes" yaml:"nodes"`
	Links       []LinkSpec `json:"links" yaml:"links"`
	MgmtNetwork string     `json:"mgmt_network,omitempty" yaml:"mgmt_network,omitempty"`
}

// DeploymentRecord is one entry parsed from the deployment tool's inspect
// output. Reconstructed on every query, never persisted.
type DeploymentRecord struct {
	Name       string                 `json:"name"`
	Status     string                 `json:"status"`
	LabPath    string                 `json:"lab_path,omitempty"`
	Containers map[string]interface{} `json:"containers,omitempty"`
}

// DeploymentResponse is the uniform envelope returned by deploy and destroy.
type DeploymentResponse struct {
	Success      bool   `json:"success"`
	TopologyName string `json:"topology_name,omitempty"`
	TopologyFile string `json:"topology_file,omitempty"`
	Output       string `json:"output,omitempty"`
	Error        string `json:"error,omitempty"`
}

// DeploymentList is the envelope returned by the list operation.
type DeploymentList struct {
	Success     bool               `json:"success"`
	Deployments []DeploymentRecord `json:"deployments"`
	Count       int                `json:"count"`
	Error       string             `json:"error,omitempty"`
}

// TopologyStatus is the envelope returned by the status operation.
type TopologyStatus struct {
	Success      bool              `json:"success"`
	TopologyName string            `json:"topology_name"`
	Status       *DeploymentRecord `json:"status,omitempty"`
	Found        bool              `json:"found"`
	Error        string            `json:"error,omitempty"`
}

// TopologyFileInfo describes one topology file in the working directory.
// Error is set when the file could not be parsed; the scan still proceeds.
type TopologyFileInfo struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Modified int64  `json:"modified"`
	Error    string `json:"error,omitempty"`
}
