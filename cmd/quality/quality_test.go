package quality_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-ocr/cmd/quality"
	"fjacquet/statement-ocr/internal/extraction"
	"fjacquet/statement-ocr/internal/logging"
	"fjacquet/statement-ocr/internal/scanner"
)

func TestQualityCommand_Metadata(t *testing.T) {
	assert.Equal(t, "quality [file]", quality.Cmd.Use)
	assert.Contains(t, quality.Cmd.Short, "OCR quality")
	assert.NotNil(t, quality.Cmd.Run)
}

func TestReport(t *testing.T) {
	logger := logging.NewMockLogger()
	pipeline := extraction.NewPipeline(extraction.DefaultConfig(), nil, logger)
	src := scanner.NewStatementScanner("", logger)

	var out bytes.Buffer
	report, err := quality.Report(pipeline, src, "", "", strings.NewReader(""), &out, logger)
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.Score)
	assert.True(t, logger.HasEntry("WARN", "Input contains no text"))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Contains(t, decoded, "score")
	assert.Contains(t, decoded, "issues")
}

func TestReport_NonEmptyInputDoesNotWarn(t *testing.T) {
	logger := logging.NewMockLogger()
	pipeline := extraction.NewPipeline(extraction.DefaultConfig(), nil, logger)
	src := scanner.NewStatementScanner("", logger)

	var out bytes.Buffer
	report, err := quality.Report(pipeline, src, "", "", strings.NewReader("STARBUCKS STORE 10001 AUSTIN TX - $4.75 on 07/11/2025"), &out, logger)
	require.NoError(t, err)
	assert.Greater(t, report.Score, 0.0)
	assert.False(t, logger.HasEntry("WARN", "Input contains no text"))
}
