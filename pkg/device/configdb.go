package device

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/spatium-net/spatium/pkg/model"
	"github.com/spatium-net/spatium/pkg/util"
)

// SONiC Redis layout: CONFIG_DB is database 4, keys are "TABLE|ENTRY"
// hashes.
const (
	configDBNum   = 4
	redisAddr     = "127.0.0.1:6379"
	configDBSep   = "|"
	scanBatchSize = 100
)

// ConfigDBClient reads a SONiC device's CONFIG_DB through an SSH tunnel.
// The caller owns the client and must Close it.
type ConfigDBClient struct {
	host   string
	tunnel *Tunnel
	rdb    *redis.Client
}

// NewConfigDBClient opens the tunnel and connects Redis to its local end.
func NewConfigDBClient(d model.Device) (*ConfigDBClient, error) {
	port := d.Port
	if port == 0 {
		port = defaultSSHPort
	}
	config, err := sshClientConfig(d.Username, d.Password, d.PrivateKey, 30*time.Second)
	if err != nil {
		return nil, err
	}
	tunnel, err := NewTunnel(d.Host, port, config, redisAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrConnectionFailed, err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: tunnel.LocalAddr(),
		DB:   configDBNum,
	})
	return &ConfigDBClient{host: d.Host, tunnel: tunnel, rdb: rdb}, nil
}

// Close shuts down the Redis connection and the tunnel.
func (c *ConfigDBClient) Close() error {
	c.rdb.Close()
	return c.tunnel.Close()
}

// Ping verifies the Redis side of the tunnel answers.
func (c *ConfigDBClient) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("CONFIG_DB ping %s: %w", c.host, err)
	}
	return nil
}

// Dump reads every CONFIG_DB table into the nested form config_db.json
// uses: table, entry, then field values.
func (c *ConfigDBClient) Dump(ctx context.Context) (map[string]map[string]map[string]string, error) {
	out := make(map[string]map[string]map[string]string)

	iter := c.rdb.Scan(ctx, 0, "*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		table, entry, ok := strings.Cut(key, configDBSep)
		if !ok {
			continue
		}
		fields, err := c.rdb.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("HGETALL %s: %w", key, err)
		}
		if out[table] == nil {
			out[table] = make(map[string]map[string]string)
		}
		out[table][entry] = fields
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("CONFIG_DB scan %s: %w", c.host, err)
	}
	return out, nil
}

// GetConfig dumps CONFIG_DB and renders it as indented JSON. Version info
// comes from the DEVICE_METADATA table when present.
func (c *ConfigDBClient) GetConfig(ctx context.Context) model.ConfigResult {
	tables, err := c.Dump(ctx)
	if err != nil {
		return model.ConfigResult{Host: c.host, Source: model.MethodConfigDB, Error: err.Error()}
	}

	raw, err := json.MarshalIndent(tables, "", "  ")
	if err != nil {
		return model.ConfigResult{Host: c.host, Source: model.MethodConfigDB, Error: err.Error()}
	}

	var version string
	if meta, ok := tables["DEVICE_METADATA"]; ok {
		if v, err := json.MarshalIndent(meta, "", "  "); err == nil {
			version = string(v)
		}
	}

	return model.ConfigResult{
		Host:          c.host,
		RunningConfig: string(raw),
		VersionInfo:   version,
		Source:        model.MethodConfigDB,
	}
}
