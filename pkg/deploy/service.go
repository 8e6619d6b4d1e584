// Package deploy manages network digital-twin deployments through an
// external topology-deployment tool invoked as a subprocess.
//
// The service owns a working directory of generated topology files.
// Deployment state is never tracked internally: every list and status call
// re-derives it by running the tool's inspect subcommand and normalizing
// its output.
package deploy

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spatium-net/spatium/pkg/model"
	"github.com/spatium-net/spatium/pkg/util"
)

// Service orchestrates validation, file generation, tool invocation, and
// output parsing behind uniform response envelopes. No error crosses the
// service boundary: every failure mode becomes a response with Success=false.
type Service struct {
	workdir string
	bin     string
	timeout time.Duration
	runner  Runner
}

// NewService creates the deployment service. It fails immediately when the
// deployment tool is not discoverable on PATH: every operation depends on
// it, so a missing binary is a fatal configuration error, not something to
// defer to first use.
func NewService(workdir, bin string, timeout time.Duration) (*Service, error) {
	if _, err := exec.LookPath(bin); err != nil {
		return nil, &CommandNotFoundError{Bin: bin}
	}
	return NewServiceWithRunner(workdir, bin, timeout, NewRunner(bin))
}

// NewServiceWithRunner creates the service with an explicit runner and no
// PATH check. Tests use this to substitute a stub for the real tool.
func NewServiceWithRunner(workdir, bin string, timeout time.Duration, runner Runner) (*Service, error) {
	if err := os.MkdirAll(workdir, 0755); err != nil {
		return nil, fmt.Errorf("create topology dir %s: %w", workdir, err)
	}
	return &Service{workdir: workdir, bin: bin, timeout: timeout, runner: runner}, nil
}

// Deploy validates the config, writes the topology file, and runs the
// tool's deploy subcommand.
func (s *Service) Deploy(ctx context.Context, cfg *model.TopologyConfig) model.DeploymentResponse {
	if err := ValidateConfig(cfg); err != nil {
		return s.deployFailure(cfg.Name, err)
	}

	path, err := WriteFile(BuildFile(cfg), s.workdir)
	if err != nil {
		return s.deployFailure(cfg.Name, err)
	}

	args := []string{"deploy", "-t", path}
	if s.timeout > 0 {
		args = append(args, "--timeout", fmt.Sprintf("%ds", int(s.timeout.Seconds())))
	}

	res, err := s.runner.Run(ctx, s.workdir, args...)
	if err != nil {
		return s.deployFailure(cfg.Name, err)
	}

	util.WithTopology(cfg.Name).Infof("deployed topology")
	return model.DeploymentResponse{
		Success:      true,
		TopologyName: cfg.Name,
		TopologyFile: path,
		Output:       res.Stdout,
	}
}

// Destroy tears down a deployed topology. The topology file must exist; it
// is left in place afterwards (DeleteTopologyFile removes it explicitly).
func (s *Service) Destroy(ctx context.Context, name string) model.DeploymentResponse {
	path := s.topologyPath(name)
	if _, err := os.Stat(path); err != nil {
		return s.destroyFailure(name, util.NewNotFoundError("topology file", path))
	}

	res, err := s.runner.Run(ctx, s.workdir, "destroy", "-t", path)
	if err != nil {
		return s.destroyFailure(name, err)
	}

	util.WithTopology(name).Infof("destroyed topology")
	return model.DeploymentResponse{
		Success:      true,
		TopologyName: name,
		TopologyFile: path,
		Output:       res.Stdout,
	}
}

// ListDeployments reports every deployment the tool knows about.
func (s *Service) ListDeployments(ctx context.Context) model.DeploymentList {
	res, err := s.runner.Run(ctx, s.workdir, "inspect", "--all")
	if err != nil {
		util.Errorf("list deployments: %v", err)
		return model.DeploymentList{
			Deployments: []model.DeploymentRecord{},
			Error:       fmt.Sprintf("failed to list deployments: %v", err),
		}
	}

	records, diag := ParseInspect(res.Stdout)
	if diag != nil {
		util.Warnf("parse inspect output: %v", diag)
	}
	if records == nil {
		records = []model.DeploymentRecord{}
	}

	return model.DeploymentList{
		Success:     true,
		Deployments: records,
		Count:       len(records),
	}
}

// TopologyStatus reports the observed state of one topology. A topology the
// tool does not know about is synthesized as not_deployed rather than an
// error.
func (s *Service) TopologyStatus(ctx context.Context, name string) model.TopologyStatus {
	res, err := s.runner.Run(ctx, s.workdir, "inspect", "-t", s.topologyPath(name))
	if err != nil {
		util.WithTopology(name).Errorf("status: %v", err)
		return model.TopologyStatus{
			TopologyName: name,
			Error:        err.Error(),
		}
	}

	records, diag := ParseInspect(res.Stdout)
	if diag != nil {
		util.WithTopology(name).Warnf("parse inspect output: %v", diag)
	}

	if len(records) == 0 {
		return model.TopologyStatus{
			Success:      true,
			TopologyName: name,
			Status:       &model.DeploymentRecord{Name: name, Status: "not_deployed"},
		}
	}

	return model.TopologyStatus{
		Success:      true,
		TopologyName: name,
		Status:       &records[0],
		Found:        true,
	}
}

// ListTopologyFiles scans the working directory. A file that fails to parse
// is reported with a per-entry error instead of aborting the scan.
func (s *Service) ListTopologyFiles() []model.TopologyFileInfo {
	files := []model.TopologyFileInfo{}

	matches, err := filepath.Glob(filepath.Join(s.workdir, "*.yaml"))
	if err != nil {
		util.Errorf("list topology files: %v", err)
		return files
	}

	for _, path := range matches {
		fi, err := os.Stat(path)
		if err != nil {
			continue
		}
		info := model.TopologyFileInfo{
			Filename: filepath.Base(path),
			Path:     path,
			Size:     fi.Size(),
			Modified: fi.ModTime().Unix(),
		}

		var doc TopologyFile
		data, err := os.ReadFile(path)
		if err == nil {
			err = yaml.Unmarshal(data, &doc)
		}
		switch {
		case err != nil:
			util.Warnf("parse topology file %s: %v", path, err)
			info.Name = "parse_error"
			info.Error = err.Error()
		case doc.Name == "":
			info.Name = "unknown"
		default:
			info.Name = doc.Name
		}

		files = append(files, info)
	}

	return files
}

// DeleteTopologyFile removes a topology file from the working directory.
func (s *Service) DeleteTopologyFile(name string) error {
	path := s.topologyPath(name)
	if _, err := os.Stat(path); err != nil {
		util.Warnf("topology file not found: %s", path)
		return util.NewNotFoundError("topology file", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete topology file %s: %w", path, err)
	}
	util.Infof("deleted topology file: %s", path)
	return nil
}

// Workdir returns the directory the service writes topology files into.
func (s *Service) Workdir() string {
	return s.workdir
}

func (s *Service) topologyPath(name string) string {
	return filepath.Join(s.workdir, name+".yaml")
}

func (s *Service) deployFailure(name string, err error) model.DeploymentResponse {
	msg := fmt.Sprintf("failed to deploy topology %q: %v", name, err)
	util.WithTopology(name).Errorf("%s", msg)
	return model.DeploymentResponse{TopologyName: name, Error: msg}
}

func (s *Service) destroyFailure(name string, err error) model.DeploymentResponse {
	msg := fmt.Sprintf("failed to destroy topology %q: %v", name, err)
	util.WithTopology(name).Errorf("%s", msg)
	return model.DeploymentResponse{TopologyName: name, Error: msg}
}
