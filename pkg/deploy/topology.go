package deploy

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spatium-net/spatium/pkg/model"
	"github.com/spatium-net/spatium/pkg/util"
)

const (
	// DefaultMgmtNetwork is used when the request leaves mgmt_network empty.
	DefaultMgmtNetwork = "spatium-mgmt"

	// mgmtSubnet is the fixed management subnet written into every file.
	mgmtSubnet = "172.20.0.0/23"
)

var (
	topologyNameRE = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	prefixCleanRE  = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
)

// TopologyFile is the on-disk containerlab document generated from a
// TopologyConfig.
type TopologyFile struct {
	Name     string       `yaml:"name"`
	Prefix   string       `yaml:"prefix"`
	Mgmt     MgmtSection  `yaml:"mgmt"`
	Topology TopologySpec `yaml:"topology"`
}

// MgmtSection holds the management network settings.
type MgmtSection struct {
	Network    string `yaml:"network"`
	IPv4Subnet string `yaml:"ipv4-subnet"`
}

// TopologySpec contains the nodes and links sections.
type TopologySpec struct {
	Nodes map[string]*TopologyNode `yaml:"nodes"`
	Links []TopologyLink           `yaml:"links"`
}

// TopologyNode defines a single node entry. Ports is a pointer so a request
// that supplied an empty list still produces a "ports: []" entry, while a
// request that omitted ports produces no entry at all.
type TopologyNode struct {
	Kind  string    `yaml:"kind"`
	Image string    `yaml:"image"`
	Ports *[]string `yaml:"ports,omitempty"`
}

// TopologyLink defines one link as an endpoint pair.
type TopologyLink struct {
	Endpoints []string `yaml:"endpoints"`
}

// ValidateConfig checks a topology request before any side effect occurs.
// Checks run in order; the first failure is fatal.
func ValidateConfig(cfg *model.TopologyConfig) error {
	if cfg.Name == "" || !topologyNameRE.MatchString(cfg.Name) {
		return util.NewValidationError(
			"topology name must contain only alphanumeric characters, hyphens, and underscores")
	}

	if len(cfg.Nodes) == 0 {
		return util.NewValidationError("at least one node is required")
	}

	names := make(map[string]bool, len(cfg.Nodes))
	var dups []string
	for _, node := range cfg.Nodes {
		if names[node.Name] {
			dups = append(dups, node.Name)
			continue
		}
		names[node.Name] = true
	}
	if len(dups) > 0 {
		return util.NewValidationError(
			fmt.Sprintf("node names must be unique, duplicates found: %s", strings.Join(dups, ", ")))
	}

	for _, node := range cfg.Nodes {
		if node.Name == "" {
			return util.NewValidationError("all nodes must have a name")
		}
		if node.Kind == "" {
			return util.NewValidationError(
				fmt.Sprintf("node %q must have a type/kind specified", node.Name))
		}
		if node.Image == "" {
			return util.NewValidationError(
				fmt.Sprintf("node %q must have an image specified", node.Name))
		}
	}

	for i, link := range cfg.Links {
		if !names[link.Node1] {
			return util.NewValidationError(
				fmt.Sprintf("link %d references unknown node: %s", i+1, link.Node1))
		}
		if !names[link.Node2] {
			return util.NewValidationError(
				fmt.Sprintf("link %d references unknown node: %s", i+1, link.Node2))
		}
		if link.Node1 == link.Node2 {
			return util.NewValidationError(
				fmt.Sprintf("link %d cannot connect a node to itself: %s", i+1, link.Node1))
		}
	}

	return nil
}

// BuildFile converts a validated config into the on-disk document.
func BuildFile(cfg *model.TopologyConfig) *TopologyFile {
	mgmt := cfg.MgmtNetwork
	if mgmt == "" {
		mgmt = DefaultMgmtNetwork
	}

	f := &TopologyFile{
		Name:   cfg.Name,
		Prefix: prefixCleanRE.ReplaceAllString(cfg.Name, "-"),
		Mgmt: MgmtSection{
			Network:    mgmt,
			IPv4Subnet: mgmtSubnet,
		},
		Topology: TopologySpec{
			Nodes: make(map[string]*TopologyNode, len(cfg.Nodes)),
		},
	}

	for i := range cfg.Nodes {
		node := &cfg.Nodes[i]
		entry := &TopologyNode{
			Kind:  node.Kind,
			Image: node.Image,
		}
		if node.Ports != nil {
			ports := node.Ports
			entry.Ports = &ports
		}
		f.Topology.Nodes[node.Name] = entry
	}

	for _, link := range cfg.Links {
		f.Topology.Links = append(f.Topology.Links, TopologyLink{
			Endpoints: []string{
				endpoint(link.Node1, link.Interface1),
				endpoint(link.Node2, link.Interface2),
			},
		})
	}

	return f
}

// endpoint formats "node:iface", or bare "node" when iface is empty. The
// deployment tool treats bare and qualified endpoints differently, so the
// distinction is preserved exactly.
func endpoint(node, iface string) string {
	if iface == "" {
		return node
	}
	return node + ":" + iface
}

// WriteFile serializes the document to <dir>/<name>.yaml. An existing file
// is overwritten with a warning, never a failure.
func WriteFile(f *TopologyFile, dir string) (string, error) {
	path := filepath.Join(dir, f.Name+".yaml")

	if _, err := os.Stat(path); err == nil {
		util.WithTopology(f.Name).Warnf("overwriting existing topology file: %s", path)
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("marshalling topology YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing topology file %s: %w", path, err)
	}

	util.WithTopology(f.Name).Infof("created topology file: %s", path)
	return path, nil
}
