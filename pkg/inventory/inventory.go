// Package inventory holds named in-memory collections of device connection
// records. Inventories live for the lifetime of the process; nothing is
// persisted.
package inventory

import (
	"sync"

	"github.com/spatium-net/spatium/pkg/model"
	"github.com/spatium-net/spatium/pkg/util"
)

// DefaultName is the inventory used when the caller names none.
const DefaultName = "default"

// Stats summarizes one inventory.
type Stats struct {
	TotalDevices int            `json:"total_devices"`
	DeviceModels map[string]int `json:"device_models"`
}

// Service owns the inventory map. It is constructed once per process and
// handed to whoever needs it; there is no package-level instance.
type Service struct {
	mu          sync.Mutex
	inventories map[string][]model.Device
}

// NewService returns an empty inventory service.
func NewService() *Service {
	return &Service{inventories: make(map[string][]model.Device)}
}

// Get returns a copy of the named inventory, creating it if absent.
func (s *Service) Get(name string) []model.Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Device(nil), s.get(name)...)
}

// Add inserts devices, skipping hosts already present. Returns the hosts
// actually added.
func (s *Service) Add(name string, devices []model.Device) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = normalize(name)
	existing := make(map[string]bool)
	for _, d := range s.get(name) {
		existing[d.Host] = true
	}

	added := []string{}
	for _, d := range devices {
		if existing[d.Host] {
			util.WithHost(d.Host).Warnf("device already exists in inventory %q", name)
			continue
		}
		s.inventories[name] = append(s.inventories[name], d)
		existing[d.Host] = true
		added = append(added, d.Host)
	}
	return added
}

// Remove deletes devices by host. Returns the hosts actually removed.
func (s *Service) Remove(name string, hosts []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = normalize(name)
	drop := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		drop[h] = true
	}

	removed := []string{}
	var kept []model.Device
	for _, d := range s.get(name) {
		if drop[d.Host] {
			removed = append(removed, d.Host)
			continue
		}
		kept = append(kept, d)
	}
	s.inventories[name] = kept

	util.Infof("removed %d devices from inventory %q", len(removed), name)
	return removed
}

// Clear empties the named inventory and returns the number of devices removed.
func (s *Service) Clear(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = normalize(name)
	n := len(s.get(name))
	s.inventories[name] = nil
	util.Infof("cleared %d devices from inventory %q", n, name)
	return n
}

// Names lists all inventory names.
func (s *Service) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := []string{}
	for name := range s.inventories {
		names = append(names, name)
	}
	return names
}

// GetByHost returns the device with the given host.
func (s *Service) GetByHost(name, host string) (model.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.get(name) {
		if d.Host == host {
			return d, nil
		}
	}
	return model.Device{}, util.NewNotFoundError("device", host)
}

// FilterByHost returns the devices matching the given host.
func (s *Service) FilterByHost(name, host string) []model.Device {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Device
	for _, d := range s.get(name) {
		if d.Host == host {
			out = append(out, d)
		}
	}
	return out
}

// GetStats summarizes the named inventory.
func (s *Service) GetStats(name string) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	devices := s.get(name)
	stats := Stats{
		TotalDevices: len(devices),
		DeviceModels: make(map[string]int),
	}
	for _, d := range devices {
		m := d.Model
		if m == "" {
			m = "unknown"
		}
		stats.DeviceModels[m]++
	}
	return stats
}

// get returns the live slice for name, creating the entry if absent.
// Callers must hold s.mu.
func (s *Service) get(name string) []model.Device {
	name = normalize(name)
	if _, ok := s.inventories[name]; !ok {
		s.inventories[name] = nil
	}
	return s.inventories[name]
}

func normalize(name string) string {
	if name == "" {
		return DefaultName
	}
	return name
}
