package device

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/spatium-net/spatium/pkg/model"
	"github.com/spatium-net/spatium/pkg/util"
)

const defaultSSHPort = 22

// SSHClient retrieves configuration from a device over SSH. Each command
// runs in its own session; the TCP connection is dialed per operation.
type SSHClient struct {
	host     string
	port     int
	user     string
	password string
	keyPath  string
	timeout  time.Duration
}

// NewSSHClient builds a client from an inventory record.
func NewSSHClient(d model.Device) *SSHClient {
	port := d.Port
	if port == 0 {
		port = defaultSSHPort
	}
	return &SSHClient{
		host:     d.Host,
		port:     port,
		user:     d.Username,
		password: d.Password,
		keyPath:  d.PrivateKey,
		timeout:  30 * time.Second,
	}
}

// sshClientConfig assembles auth methods from a password and/or a private
// key file. Host keys are not verified; the targets are lab devices.
func sshClientConfig(user, password, keyPath string, timeout time.Duration) (*ssh.ClientConfig, error) {
	var auth []ssh.AuthMethod
	if keyPath != "" {
		raw, err := os.ReadFile(keyPath)
		if err != nil {
			return nil, fmt.Errorf("read private key %s: %w", keyPath, err)
		}
		signer, err := ssh.ParsePrivateKey(raw)
		if err != nil {
			return nil, fmt.Errorf("parse private key %s: %w", keyPath, err)
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}
	if password != "" {
		auth = append(auth, ssh.Password(password))
	}
	if len(auth) == 0 {
		return nil, fmt.Errorf("no authentication method for user %q", user)
	}
	return &ssh.ClientConfig{
		User:            user,
		Auth:            auth,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}, nil
}

func (c *SSHClient) dial() (*ssh.Client, error) {
	config, err := sshClientConfig(c.user, c.password, c.keyPath, c.timeout)
	if err != nil {
		return nil, err
	}
	client, err := ssh.Dial("tcp", fmt.Sprintf("%s:%d", c.host, c.port), config)
	if err != nil {
		return nil, fmt.Errorf("SSH dial %s: %w: %v", c.host, util.ErrConnectionFailed, err)
	}
	return client, nil
}

// TestConnection dials and disconnects without running anything.
func (c *SSHClient) TestConnection() error {
	client, err := c.dial()
	if err != nil {
		return err
	}
	return client.Close()
}

// ExecCommand runs one command in a fresh session and returns its combined
// output.
func (c *SSHClient) ExecCommand(cmd string) (string, error) {
	client, err := c.dial()
	if err != nil {
		return "", err
	}
	defer client.Close()
	return execOn(client, cmd)
}

func execOn(client *ssh.Client, cmd string) (string, error) {
	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("SSH session: %w", err)
	}
	defer session.Close()

	output, err := session.CombinedOutput(cmd)
	if err != nil {
		return string(output), fmt.Errorf("SSH exec %q: %w", cmd, err)
	}
	return string(output), nil
}

// GetConfig runs the model's show command over one SSH connection. An
// empty result falls back to reading config_db.json off disk, which covers
// SONiC images whose CLI is not fully wired. Version and interface state
// are best effort and never fail the fetch.
func (c *SSHClient) GetConfig(command string) model.ConfigResult {
	client, err := c.dial()
	if err != nil {
		return model.ConfigResult{Host: c.host, Source: model.MethodSSH, Error: err.Error()}
	}
	defer client.Close()

	running, err := execOn(client, command)
	if err != nil {
		return model.ConfigResult{Host: c.host, Source: model.MethodSSH, Error: err.Error()}
	}
	if strings.TrimSpace(running) == "" {
		if alt, altErr := execOn(client, sonicConfigDBCommand); altErr == nil {
			running = alt
		}
	}
	running = prettyJSON(strings.TrimSpace(running))

	version, _ := execOn(client, "show version")
	interfaces, _ := execOn(client, "show interfaces status")

	return model.ConfigResult{
		Host:          c.host,
		RunningConfig: running,
		VersionInfo:   strings.TrimSpace(version),
		Interfaces:    strings.TrimSpace(interfaces),
		Source:        model.MethodSSH,
	}
}

// prettyJSON re-indents s when it is valid JSON and returns it unchanged
// otherwise.
func prettyJSON(s string) string {
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return s
	}
	return string(out)
}
