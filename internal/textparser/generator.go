package textparser

import (
	"strings"

	"fjacquet/statement-ocr/internal/logging"
)

// Generator runs an ordered pattern table over every line of a text.
type Generator struct {
	patterns []Pattern
	logger   logging.Logger
}

// NewGenerator creates a Generator. A nil or empty pattern list selects
// DefaultPatterns.
func NewGenerator(patterns []Pattern, logger logging.Logger) *Generator {
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Generator{patterns: patterns, logger: logger}
}

// Patterns returns the pattern table in priority order.
func (g *Generator) Patterns() []Pattern {
	out := make([]Pattern, len(g.patterns))
	copy(out, g.patterns)
	return out
}

// Generate splits text into non-empty trimmed lines and matches every pattern
// against every line. Candidates come back in discovery order: line order
// first, then pattern priority.
func (g *Generator) Generate(text string) []Candidate {
	var candidates []Candidate
	for i, line := range SplitLines(text) {
		candidates = append(candidates, g.MatchLine(line, i+1)...)
	}
	g.logger.WithFields(
		logging.Field{Key: logging.FieldStage, Value: "generate"},
		logging.Field{Key: logging.FieldCount, Value: len(candidates)},
	).Debug("Generated candidates")
	return candidates
}

// MatchLine returns one candidate per matching pattern. Patterns are not
// mutually exclusive.
func (g *Generator) MatchLine(line string, lineNo int) []Candidate {
	var out []Candidate
	for _, p := range g.patterns {
		if c, ok := p.Match(line, lineNo); ok {
			out = append(out, c)
		}
	}
	return out
}

// SplitLines returns the non-empty, trimmed physical lines of text.
func SplitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(strings.TrimSuffix(l, "\r"))
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
