package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// GenerateRunID creates a short, human-readable identifier for one planner invocation.
// Format: {operation}-{sourceStem}-{8charHexUUID}
//
// Example:
//   - Input: operation="plan", source="data/commodities.json"
//   - Output: "plan-commodities-a3f8e2b1"
//
// An empty source yields "{operation}-{8charHexUUID}".
func GenerateRunID(operation, source string) string {
	stem := sourceStem(source)
	if stem == "" {
		return operation + "-" + generateShortUUID()
	}
	return operation + "-" + stem + "-" + generateShortUUID()
}

// sourceStem reduces a catalog path or DSN-like source to a compact label:
//   - "data/commodities.json" -> "commodities"
//   - "planner.db" -> "planner"
//   - "Chair Catalog.yaml" -> "chair-catalog"
func sourceStem(source string) string {
	if source == "" {
		return ""
	}
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ToLower(strings.Join(strings.Fields(base), "-"))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return base
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
