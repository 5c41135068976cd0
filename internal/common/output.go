package common

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/statement-ocr/internal/models"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use json or csv)", s)
	}
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	return nil
}

// WriteJSONFile writes v as indented JSON to path, creating parent directories.
func WriteJSONFile(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}

// WriteResult renders an extraction result. JSON carries the quality report;
// CSV carries the transactions only.
func WriteResult(w io.Writer, result *models.ExtractionResult, format string, delimiter rune) error {
	if result == nil {
		return fmt.Errorf("cannot write nil result")
	}
	switch format {
	case FormatCSV:
		return WriteTransactionsCSV(w, result.Transactions, delimiter)
	case FormatJSON, "":
		return WriteJSON(w, result)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
