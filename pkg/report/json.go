package report

import (
	"encoding/json"
	"os"
)

// ExportJSON serializes a report to indented JSON for readability.
func ExportJSON(r *ClassificationReport) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// ExportJSONCompact serializes a report to JSON without indentation.
func ExportJSONCompact(r *ClassificationReport) ([]byte, error) {
	return json.Marshal(r)
}

// SaveJSONToFile exports a report to an indented JSON file.
// The file is created with 0644 permissions.
func SaveJSONToFile(r *ClassificationReport, filepath string) error {
	data, err := ExportJSON(r)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// SaveJSONCompactToFile exports a report to a compact JSON file.
// The file is created with 0644 permissions.
func SaveJSONCompactToFile(r *ClassificationReport, filepath string) error {
	data, err := ExportJSONCompact(r)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}
