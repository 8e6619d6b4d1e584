package inventory

import (
	"sort"
	"testing"

	"github.com/spatium-net/spatium/pkg/model"
)

func TestAddDeduplicatesByHost(t *testing.T) {
	svc := NewService()

	added := svc.Add("", []model.Device{
		{Host: "10.0.0.1", Username: "admin"},
		{Host: "10.0.0.2", Username: "admin"},
		{Host: "10.0.0.1", Username: "other"},
	})
	if len(added) != 2 {
		t.Fatalf("added = %v, want 2 hosts", added)
	}

	again := svc.Add(DefaultName, []model.Device{{Host: "10.0.0.2"}})
	if len(again) != 0 {
		t.Errorf("re-add reported %v, want none", again)
	}
	if got := len(svc.Get(DefaultName)); got != 2 {
		t.Errorf("inventory size = %d, want 2", got)
	}
}

func TestRemove(t *testing.T) {
	svc := NewService()
	svc.Add("lab", []model.Device{{Host: "a"}, {Host: "b"}, {Host: "c"}})

	removed := svc.Remove("lab", []string{"a", "c", "ghost"})
	sort.Strings(removed)
	if len(removed) != 2 || removed[0] != "a" || removed[1] != "c" {
		t.Errorf("removed = %v, want [a c]", removed)
	}
	if got := svc.Get("lab"); len(got) != 1 || got[0].Host != "b" {
		t.Errorf("remaining = %v, want only b", got)
	}
}

func TestClear(t *testing.T) {
	svc := NewService()
	svc.Add("lab", []model.Device{{Host: "a"}, {Host: "b"}})

	if n := svc.Clear("lab"); n != 2 {
		t.Errorf("Clear = %d, want 2", n)
	}
	if got := svc.Get("lab"); len(got) != 0 {
		t.Errorf("inventory not empty after clear: %v", got)
	}
}

func TestNamesTracksAccessedInventories(t *testing.T) {
	svc := NewService()
	svc.Get("one")
	svc.Add("two", []model.Device{{Host: "a"}})

	names := svc.Names()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "one" || names[1] != "two" {
		t.Errorf("Names = %v, want [one two]", names)
	}
}

func TestGetByHost(t *testing.T) {
	svc := NewService()
	svc.Add("lab", []model.Device{{Host: "a", Username: "admin"}})

	d, err := svc.GetByHost("lab", "a")
	if err != nil {
		t.Fatalf("GetByHost: %v", err)
	}
	if d.Username != "admin" {
		t.Errorf("device = %+v", d)
	}

	if _, err := svc.GetByHost("lab", "ghost"); err == nil {
		t.Error("missing host should return an error")
	}
}

func TestGetStats(t *testing.T) {
	svc := NewService()
	svc.Add("lab", []model.Device{
		{Host: "a", Model: "sonic"},
		{Host: "b", Model: "sonic"},
		{Host: "c"},
	})

	stats := svc.GetStats("lab")
	if stats.TotalDevices != 3 {
		t.Errorf("TotalDevices = %d, want 3", stats.TotalDevices)
	}
	if stats.DeviceModels["sonic"] != 2 || stats.DeviceModels["unknown"] != 1 {
		t.Errorf("DeviceModels = %v", stats.DeviceModels)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	svc := NewService()
	svc.Add("lab", []model.Device{{Host: "a", Username: "admin"}})

	got := svc.Get("lab")
	got[0].Username = "mutated"

	if d, _ := svc.GetByHost("lab", "a"); d.Username != "admin" {
		t.Error("Get should return a copy, not the live slice")
	}
}
