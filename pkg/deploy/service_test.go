package deploy

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spatium-net/spatium/pkg/model"
)

// stubRunner records invocations and plays back canned results.
type stubRunner struct {
	calls  [][]string
	result *RunResult
	err    error
}

func (r *stubRunner) Run(ctx context.Context, dir string, args ...string) (*RunResult, error) {
	r.calls = append(r.calls, args)
	if r.err != nil {
		return r.result, r.err
	}
	return r.result, nil
}

func newTestService(t *testing.T, runner Runner) *Service {
	t.Helper()
	svc, err := NewServiceWithRunner(t.TempDir(), "containerlab", 0, runner)
	if err != nil {
		t.Fatalf("NewServiceWithRunner: %v", err)
	}
	return svc
}

// ============================================================================
// Deploy Tests
// ============================================================================

func TestDeploySuccess(t *testing.T) {
	runner := &stubRunner{result: &RunResult{Stdout: "Deployed"}}
	svc := newTestService(t, runner)

	cfg := &model.TopologyConfig{
		Name:  "lab1",
		Nodes: []model.NodeSpec{{Name: "n1", Kind: "sonic-vs", Image: "sonic:latest"}},
	}

	resp := svc.Deploy(context.Background(), cfg)
	if !resp.Success {
		t.Fatalf("Deploy failed: %s", resp.Error)
	}
	if resp.TopologyName != "lab1" {
		t.Errorf("TopologyName = %q", resp.TopologyName)
	}
	if resp.Output != "Deployed" {
		t.Errorf("Output = %q, want Deployed", resp.Output)
	}
	if _, err := os.Stat(resp.TopologyFile); err != nil {
		t.Errorf("topology file not written: %v", err)
	}
	if len(runner.calls) != 1 || runner.calls[0][0] != "deploy" {
		t.Errorf("calls = %v, want one deploy invocation", runner.calls)
	}
}

func TestDeployTimeoutFlag(t *testing.T) {
	runner := &stubRunner{result: &RunResult{Stdout: "ok"}}
	svc, err := NewServiceWithRunner(t.TempDir(), "containerlab", 120*time.Second, runner)
	if err != nil {
		t.Fatal(err)
	}

	cfg := &model.TopologyConfig{
		Name:  "lab1",
		Nodes: []model.NodeSpec{{Name: "n1", Kind: "sonic-vs", Image: "sonic:latest"}},
	}
	svc.Deploy(context.Background(), cfg)

	args := strings.Join(runner.calls[0], " ")
	if !strings.Contains(args, "--timeout 120s") {
		t.Errorf("args = %q, want --timeout 120s", args)
	}
}

func TestDeployValidationFailureWritesNoFile(t *testing.T) {
	runner := &stubRunner{result: &RunResult{}}
	svc := newTestService(t, runner)

	cfg := &model.TopologyConfig{
		Name: "lab1",
		Nodes: []model.NodeSpec{
			{Name: "n1", Kind: "sonic-vs", Image: "sonic:latest"},
			{Name: "n1", Kind: "sonic-vs", Image: "sonic:latest"},
		},
	}

	resp := svc.Deploy(context.Background(), cfg)
	if resp.Success {
		t.Fatal("Deploy succeeded with duplicate node names")
	}
	if !strings.Contains(resp.Error, "n1") {
		t.Errorf("error %q does not mention the duplicate name", resp.Error)
	}
	if len(runner.calls) != 0 {
		t.Error("tool was invoked despite validation failure")
	}
	if _, err := os.Stat(filepath.Join(svc.Workdir(), "lab1.yaml")); !os.IsNotExist(err) {
		t.Error("topology file written despite validation failure")
	}
}

func TestDeployToolFailure(t *testing.T) {
	runner := &stubRunner{
		result: &RunResult{Stderr: "permission denied", ExitCode: 1},
		err:    &ExitError{ExitCode: 1, Stderr: "permission denied"},
	}
	svc := newTestService(t, runner)

	cfg := &model.TopologyConfig{
		Name:  "lab1",
		Nodes: []model.NodeSpec{{Name: "n1", Kind: "sonic-vs", Image: "sonic:latest"}},
	}

	resp := svc.Deploy(context.Background(), cfg)
	if resp.Success {
		t.Fatal("Deploy succeeded despite tool failure")
	}
	if !strings.Contains(resp.Error, "permission denied") {
		t.Errorf("error %q does not carry stderr", resp.Error)
	}
}

// ============================================================================
// Destroy Tests
// ============================================================================

func TestDestroyMissingFile(t *testing.T) {
	runner := &stubRunner{result: &RunResult{}}
	svc := newTestService(t, runner)

	resp := svc.Destroy(context.Background(), "missing-lab")
	if resp.Success {
		t.Fatal("Destroy succeeded without a topology file")
	}
	if !strings.Contains(resp.Error, "not found") {
		t.Errorf("error = %q, want mention of not found", resp.Error)
	}
	if len(runner.calls) != 0 {
		t.Error("tool was invoked for a missing topology")
	}
}

func TestDestroyLeavesFileInPlace(t *testing.T) {
	runner := &stubRunner{result: &RunResult{Stdout: "Destroyed"}}
	svc := newTestService(t, runner)

	path := filepath.Join(svc.Workdir(), "lab1.yaml")
	if err := os.WriteFile(path, []byte("name: lab1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	resp := svc.Destroy(context.Background(), "lab1")
	if !resp.Success {
		t.Fatalf("Destroy failed: %s", resp.Error)
	}
	if runner.calls[0][0] != "destroy" {
		t.Errorf("calls = %v", runner.calls)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("destroy should not delete the topology file")
	}
}

// ============================================================================
// List / Status Tests
// ============================================================================

func TestListDeployments(t *testing.T) {
	runner := &stubRunner{result: &RunResult{
		Stdout: `[{"name":"lab1","state":"running","containers":{"c1":{}}}]`,
	}}
	svc := newTestService(t, runner)

	list := svc.ListDeployments(context.Background())
	if !list.Success {
		t.Fatalf("ListDeployments failed: %s", list.Error)
	}
	if list.Count != 1 || len(list.Deployments) != 1 {
		t.Fatalf("count = %d, deployments = %d", list.Count, len(list.Deployments))
	}
	if list.Deployments[0].Status != "running" {
		t.Errorf("status = %q, want running", list.Deployments[0].Status)
	}
}

func TestListDeploymentsToolFailure(t *testing.T) {
	runner := &stubRunner{err: &ExitError{ExitCode: 1, Stderr: "boom"}}
	svc := newTestService(t, runner)

	list := svc.ListDeployments(context.Background())
	if list.Success {
		t.Fatal("expected failure")
	}
	if list.Count != 0 || list.Deployments == nil || len(list.Deployments) != 0 {
		t.Errorf("failure list = %+v, want empty deployments and zero count", list)
	}
	if list.Error == "" {
		t.Error("missing error message")
	}
}

func TestTopologyStatusNotDeployed(t *testing.T) {
	runner := &stubRunner{result: &RunResult{Stdout: ""}}
	svc := newTestService(t, runner)

	st := svc.TopologyStatus(context.Background(), "lab9")
	if !st.Success {
		t.Fatalf("status failed: %s", st.Error)
	}
	if st.Found {
		t.Error("Found = true, want false")
	}
	if st.Status == nil || st.Status.Status != "not_deployed" {
		t.Errorf("Status = %+v, want synthesized not_deployed", st.Status)
	}
}

func TestTopologyStatusFound(t *testing.T) {
	runner := &stubRunner{result: &RunResult{
		Stdout: `[{"name":"lab1","state":"running"}]`,
	}}
	svc := newTestService(t, runner)

	st := svc.TopologyStatus(context.Background(), "lab1")
	if !st.Found {
		t.Fatal("Found = false")
	}
	if st.Status.Status != "running" {
		t.Errorf("status = %q", st.Status.Status)
	}
}

// ============================================================================
// File Management Tests
// ============================================================================

func TestListTopologyFiles(t *testing.T) {
	svc := newTestService(t, &stubRunner{result: &RunResult{}})

	good := filepath.Join(svc.Workdir(), "lab1.yaml")
	os.WriteFile(good, []byte("name: lab1\nprefix: lab1\n"), 0644)
	bad := filepath.Join(svc.Workdir(), "broken.yaml")
	os.WriteFile(bad, []byte(":\n\t- not yaml"), 0644)

	files := svc.ListTopologyFiles()
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}

	byName := map[string]model.TopologyFileInfo{}
	for _, f := range files {
		byName[f.Filename] = f
	}
	if byName["lab1.yaml"].Name != "lab1" {
		t.Errorf("lab1.yaml parsed name = %q", byName["lab1.yaml"].Name)
	}
	if byName["broken.yaml"].Error == "" {
		t.Error("broken.yaml should carry a per-entry error")
	}
}

func TestDeleteTopologyFile(t *testing.T) {
	svc := newTestService(t, &stubRunner{result: &RunResult{}})

	path := filepath.Join(svc.Workdir(), "lab1.yaml")
	os.WriteFile(path, []byte("name: lab1\n"), 0644)

	if err := svc.DeleteTopologyFile("lab1"); err != nil {
		t.Fatalf("DeleteTopologyFile: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file still exists")
	}

	if err := svc.DeleteTopologyFile("lab1"); err == nil {
		t.Error("second delete should fail with not found")
	}
}
