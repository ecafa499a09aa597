// Package netio reads and writes activity networks in CSV, JSON and HCL.
package netio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joshharrison/critpath/internal/graph"
	"github.com/joshharrison/critpath/internal/pert"
)

// Format is an input file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

// DetectFormat infers the format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("unsupported file extension %q (want .csv, .json or .hcl)", filepath.Ext(path))
	}
}

// ParseActivities decodes activities in the given format. name is used in
// HCL diagnostics.
func ParseActivities(data []byte, format Format, name string) ([]graph.Activity, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(data), nil
	case FormatJSON:
		return ParseJSON(data)
	case FormatHCL:
		return ParseHCL(data, name)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// ParsePERT decodes three-point activities in the given format.
func ParsePERT(data []byte, format Format, name string) ([]pert.Activity, error) {
	switch format {
	case FormatCSV:
		return ParsePERTCSV(data), nil
	case FormatJSON:
		return ParsePERTJSON(data)
	case FormatHCL:
		return ParsePERTHCL(data, name)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// LoadActivities reads a network file, picking the parser by extension.
func LoadActivities(path string) ([]graph.Activity, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	acts, err := ParseActivities(data, format, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return acts, nil
}

// LoadPERT reads a three-point network file, picking the parser by extension.
func LoadPERT(path string) ([]pert.Activity, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	acts, err := ParsePERT(data, format, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return acts, nil
}
