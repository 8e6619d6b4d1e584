package device

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spatium-net/spatium/pkg/model"
	"github.com/spatium-net/spatium/pkg/util"
)

// FetchFunc retrieves one device's configuration. Failures are carried in
// the result's Error field, never as a panic or a dropped device.
type FetchFunc func(ctx context.Context, d model.Device) model.ConfigResult

// Fetcher dispatches config retrieval by method and fans bulk requests out
// across a bounded worker pool.
type Fetcher struct {
	restTimeout time.Duration
	parallel    int
	methods     map[string]FetchFunc
}

// NewFetcher wires the real transport clients. parallel bounds concurrent
// device connections during bulk fetches.
func NewFetcher(restTimeout time.Duration, parallel int) *Fetcher {
	if parallel < 1 {
		parallel = 1
	}
	f := &Fetcher{restTimeout: restTimeout, parallel: parallel}
	f.methods = map[string]FetchFunc{
		model.MethodSSH:      f.fetchSSH,
		model.MethodREST:     f.fetchREST,
		model.MethodConfigDB: f.fetchConfigDB,
	}
	return f
}

// Fetch retrieves one device's configuration. An empty or unknown method
// falls back to SSH.
func (f *Fetcher) Fetch(ctx context.Context, d model.Device) model.ConfigResult {
	method := strings.ToLower(d.Method)
	fn, ok := f.methods[method]
	if !ok {
		fn = f.methods[model.MethodSSH]
	}
	return fn(ctx, d)
}

// FetchBulk retrieves configurations concurrently, at most parallel
// devices in flight. Results keep the input order; a failed device holds
// its slot with an error result.
func (f *Fetcher) FetchBulk(ctx context.Context, devices []model.Device) []model.ConfigResult {
	results := make([]model.ConfigResult, len(devices))
	if len(devices) == 0 {
		return results
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, f.parallel)
	for i, d := range devices {
		wg.Add(1)
		go func(i int, d model.Device) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = f.Fetch(ctx, d)
		}(i, d)
	}
	wg.Wait()
	return results
}

// SaveConfigs fetches configurations and writes each to
// {dir}/{host}_config.txt. Devices that returned nothing get a result
// explaining why instead of a file.
func (f *Fetcher) SaveConfigs(ctx context.Context, devices []model.Device, dir string) ([]model.SaveResult, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}

	configs := f.FetchBulk(ctx, devices)
	saved := make([]model.SaveResult, 0, len(configs))
	for _, cfg := range configs {
		sr := model.SaveResult{Host: cfg.Host, Source: cfg.Source, Error: cfg.Error}
		if cfg.RunningConfig == "" || cfg.Error != "" {
			sr.Message = fmt.Sprintf("no configuration retrieved for host %s", cfg.Host)
			saved = append(saved, sr)
			continue
		}

		path := filepath.Join(dir, cfg.Host+"_config.txt")
		if err := os.WriteFile(path, []byte(cfg.RunningConfig), 0644); err != nil {
			sr.Error = fmt.Sprintf("failed to save config to file: %v", err)
			sr.Message = fmt.Sprintf("failed to save configuration for host %s", cfg.Host)
		} else {
			sr.Message = fmt.Sprintf("configuration for host %s saved to %s", cfg.Host, path)
			sr.FilePath = path
		}
		saved = append(saved, sr)
	}
	return saved, nil
}

// TestConnectivity probes one device over its configured method.
func (f *Fetcher) TestConnectivity(ctx context.Context, d model.Device) model.ConnectivityResult {
	method := strings.ToLower(d.Method)
	if method == "" {
		method = model.MethodSSH
	}
	res := model.ConnectivityResult{Host: d.Host, Method: method}

	var err error
	switch method {
	case model.MethodREST:
		err = NewRESTClient(d, false, f.restTimeout).TestConnection(ctx)
	case model.MethodConfigDB:
		var c *ConfigDBClient
		if c, err = NewConfigDBClient(d); err == nil {
			err = c.Ping(ctx)
			c.Close()
		}
	default:
		err = NewSSHClient(d).TestConnection()
	}

	if err != nil {
		util.WithHost(d.Host).Warnf("connectivity test failed: %v", err)
		res.Error = err.Error()
		return res
	}
	res.Connected = true
	return res
}

func (f *Fetcher) fetchSSH(ctx context.Context, d model.Device) model.ConfigResult {
	return NewSSHClient(d).GetConfig(ConfigCommand(d.Model))
}

func (f *Fetcher) fetchREST(ctx context.Context, d model.Device) model.ConfigResult {
	c := NewRESTClient(d, false, f.restTimeout)

	var (
		body Body
		err  error
	)
	if d.RestURL != "" {
		body, err = c.GetConfigURL(ctx, d.RestURL)
	} else {
		body, err = c.GetConfig(ctx, RESTEndpoint(d.Model))
	}
	if err != nil {
		util.WithHost(d.Host).Errorf("REST config retrieval failed: %v", err)
		return model.ConfigResult{Host: d.Host, Source: model.MethodREST, Error: err.Error()}
	}

	result := model.ConfigResult{
		Host:          d.Host,
		RunningConfig: body.Text(),
		Source:        model.MethodREST,
	}
	if v, ok := c.VersionInfo(ctx); ok {
		result.VersionInfo = v.Text()
	}
	if ifs, ok := c.InterfacesInfo(ctx); ok {
		result.Interfaces = ifs.Text()
	}
	return result
}

func (f *Fetcher) fetchConfigDB(ctx context.Context, d model.Device) model.ConfigResult {
	c, err := NewConfigDBClient(d)
	if err != nil {
		util.WithHost(d.Host).Errorf("CONFIG_DB connection failed: %v", err)
		return model.ConfigResult{Host: d.Host, Source: model.MethodConfigDB, Error: err.Error()}
	}
	defer c.Close()
	return c.GetConfig(ctx)
}
