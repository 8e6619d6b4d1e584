package deploy

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spatium-net/spatium/pkg/model"
)

// ParseInspect normalizes the tool's inspect output into deployment records.
// The tool emits JSON in current versions and a bordered text table in older
// ones; a cheap format probe tries JSON first and falls back to line parsing.
// ParseInspect never fails: unrecognized input yields an empty slice plus a
// diagnostic for the caller to log.
func ParseInspect(raw string) ([]model.DeploymentRecord, error) {
	if records, ok := parseInspectJSON(raw); ok {
		return records, nil
	}

	records := parseInspectTable(raw)
	if len(records) == 0 && strings.TrimSpace(raw) != "" {
		return nil, fmt.Errorf("inspect output not recognized as JSON or table: %.80q", raw)
	}
	return records, nil
}

// parseInspectJSON handles the structured format: either a list of lab
// records or a single lab object keyed by "containers". Returns ok=false
// when the input is not valid JSON of a recognized shape.
func parseInspectJSON(raw string) ([]model.DeploymentRecord, bool) {
	var list []map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		records := []model.DeploymentRecord{}
		for _, item := range list {
			if _, hasName := item["name"]; !hasName {
				continue
			}
			records = append(records, model.DeploymentRecord{
				Name:       jsonString(item, "name", "unknown"),
				Status:     jsonString(item, "state", "unknown"),
				LabPath:    jsonString(item, "lab-path", ""),
				Containers: jsonMap(item, "containers"),
			})
		}
		return records, true
	}

	var single map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		if _, hasContainers := single["containers"]; !hasContainers {
			// Structured but unrecognized shape.
			return nil, true
		}
		status := "unknown"
		switch v := single["containers"].(type) {
		case map[string]interface{}:
			if len(v) > 0 {
				status = "running"
			}
		case []interface{}:
			if len(v) > 0 {
				status = "running"
			}
		}
		return []model.DeploymentRecord{{
			Name:       jsonString(single, "name", "unknown"),
			Status:     status,
			LabPath:    jsonString(single, "lab-path", ""),
			Containers: jsonMap(single, "containers"),
		}}, true
	}

	return nil, false
}

// parseInspectTable handles the legacy text-table format. Lines starting
// with '+' or '|' are table borders; remaining lines are whitespace-split
// with token 0 as the name and token 1 as the status.
func parseInspectTable(raw string) []model.DeploymentRecord {
	var records []model.DeploymentRecord
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "+") || strings.HasPrefix(line, "|") {
			continue
		}
		// Braces mean JSON debris that already failed the structured parse,
		// not a table row.
		if strings.ContainsAny(line, "{}") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		records = append(records, model.DeploymentRecord{
			Name:   parts[0],
			Status: parts[1],
		})
	}
	return records
}

func jsonString(m map[string]interface{}, key, def string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return def
}

func jsonMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key].(map[string]interface{}); ok {
		return v
	}
	return map[string]interface{}{}
}
