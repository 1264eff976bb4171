package analyzer

import (
	"encoding/json"
	"strings"
)

const unknownSchema = "Unknown"

// parseJSONLD decodes one script body into the @type values of every object
// it describes, one entry per object. ok is false when the JSON is malformed.
func parseJSONLD(raw string) (objects [][]string, ok bool) {
	var v any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &v); err != nil {
		return nil, false
	}
	return collectTypes(v), true
}

func collectTypes(v any) [][]string {
	switch node := v.(type) {
	case []any:
		var out [][]string
		for _, item := range node {
			if _, isObj := item.(map[string]any); isObj {
				out = append(out, collectTypes(item)...)
			}
		}
		return out
	case map[string]any:
		if graph, ok := node["@graph"].([]any); ok {
			return collectTypes(graph)
		}
		return [][]string{typeNames(node["@type"])}
	default:
		return nil
	}
}

func typeNames(t any) []string {
	switch tv := t.(type) {
	case string:
		if tv == "" {
			return []string{unknownSchema}
		}
		return []string{tv}
	case []any:
		var out []string
		for _, item := range tv {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return []string{unknownSchema}
		}
		return out
	default:
		return []string{unknownSchema}
	}
}

// scoreStructuredData returns the earned points out of 25.
func (a *Analyzer) scoreStructuredData(scripts []string) (StructuredData, float64) {
	sd := StructuredData{
		HasJSONLD:   len(scripts) > 0,
		ScriptCount: len(scripts),
		Schemas:     []string{},
	}
	if len(scripts) == 0 {
		return sd, 0
	}

	earned := 15.0
	for _, raw := range scripts {
		objects, ok := parseJSONLD(raw)
		if !ok {
			continue
		}
		for _, types := range objects {
			sd.Schemas = append(sd.Schemas, types...)
			earned += a.patterns.schemaBonus(types)
		}
	}
	return sd, min(earned, 25)
}
