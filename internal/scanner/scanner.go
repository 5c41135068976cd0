// Package scanner discovers statement text files and decodes them to UTF-8.
package scanner

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/net/html/charset"

	"fjacquet/statement-ocr/internal/logging"
)

// DefaultExtensions are the file extensions picked up when walking directories.
var DefaultExtensions = []string{".txt", ".text", ".ocr"}

// Document is one decoded statement text.
type Document struct {
	ID      string
	Path    string
	Content string
	// Encoding is the name of the source encoding when it was not UTF-8.
	Encoding string
}

// StatementScanner reads statement text files.
type StatementScanner struct {
	logger     logging.Logger
	extensions map[string]bool
	charset    string
}

// NewStatementScanner creates a scanner. charsetLabel forces a source
// encoding (e.g. "windows-1252"); empty means detect.
func NewStatementScanner(charsetLabel string, logger logging.Logger) *StatementScanner {
	if logger == nil {
		logger = logging.GetLogger()
	}
	exts := make(map[string]bool, len(DefaultExtensions))
	for _, e := range DefaultExtensions {
		exts[e] = true
	}
	return &StatementScanner{
		logger:     logger.WithField("component", "StatementScanner"),
		extensions: exts,
		charset:    charsetLabel,
	}
}

// ScanPaths scans files and directories. Files named explicitly are read
// whatever their extension; directories are walked for known extensions.
func (s *StatementScanner) ScanPaths(paths []string) ([]Document, error) {
	var docs []Document

	for _, p := range paths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for %s: %w", p, err)
		}

		info, err := os.Stat(absPath)
		if err != nil {
			s.logger.WithError(err).WithField(logging.FieldFile, absPath).Error("Failed to stat path")
			return nil, fmt.Errorf("failed to stat path %s: %w", absPath, err)
		}

		if info.IsDir() {
			dirDocs, err := s.scanDirectory(absPath)
			if err != nil {
				return nil, err
			}
			docs = append(docs, dirDocs...)
			continue
		}

		doc, err := s.ScanFile(absPath)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

func (s *StatementScanner) scanDirectory(dirPath string) ([]Document, error) {
	var docs []Document

	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.WithError(err).WithField(logging.FieldFile, path).Warn("Error walking path")
			return nil
		}
		if d.IsDir() {
			if path != dirPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || !s.extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		doc, err := s.ScanFile(path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	return docs, nil
}

// ScanFile reads and decodes a single file.
func (s *StatementScanner) ScanFile(filePath string) (Document, error) {
	raw, err := os.ReadFile(filePath) // #nosec G304 -- user-supplied input path
	if err != nil {
		s.logger.WithError(err).WithField(logging.FieldFile, filePath).Error("Failed to read file")
		return Document{}, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	content, encoding, err := Decode(raw, s.charset)
	if err != nil {
		return Document{}, fmt.Errorf("failed to decode %s: %w", filePath, err)
	}
	if encoding != "" {
		s.logger.WithFields(
			logging.Field{Key: logging.FieldFile, Value: filePath},
			logging.Field{Key: "encoding", Value: encoding},
		).Debug("Decoded non-UTF-8 statement")
	}

	return Document{
		ID:       uuid.NewString(),
		Path:     filePath,
		Content:  content,
		Encoding: encoding,
	}, nil
}

// ReadAll decodes a stream such as stdin.
func (s *StatementScanner) ReadAll(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	content, _, err := Decode(raw, s.charset)
	return content, err
}

// Decode converts raw to a UTF-8 string. With an empty label, valid UTF-8 is
// returned as is (minus a byte order mark) and anything else is decoded with
// the encoding detected for plain text. The returned name is empty when no
// conversion happened.
func Decode(raw []byte, label string) (string, string, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	if label == "" {
		if utf8.Valid(raw) {
			return string(raw), "", nil
		}
		enc, name, _ := charset.DetermineEncoding(raw, "text/plain")
		decoded, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			return "", "", fmt.Errorf("failed to decode as %s: %w", name, err)
		}
		return string(decoded), name, nil
	}

	enc, name := charset.Lookup(label)
	if enc == nil {
		return "", "", fmt.Errorf("unknown charset %q", label)
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode as %s: %w", name, err)
	}
	if name == "utf-8" {
		name = ""
	}
	return string(decoded), name, nil
}
