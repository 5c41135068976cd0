// Package quality handles the OCR quality report command
package quality

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"fjacquet/statement-ocr/cmd/common"
	"fjacquet/statement-ocr/cmd/root"
	internalcommon "fjacquet/statement-ocr/internal/common"
	"fjacquet/statement-ocr/internal/logging"
	"fjacquet/statement-ocr/internal/models"
	ocrquality "fjacquet/statement-ocr/internal/quality"
)

// Assessor scores statement text.
type Assessor interface {
	Assess(text string) models.QualityReport
}

// Cmd represents the quality command
var Cmd = &cobra.Command{
	Use:   "quality [file]",
	Short: "Score the OCR quality of a statement text",
	Long: `Score how statement-like an OCR text is without extracting transactions.

Prints the quality report (score, issues and measured details) as JSON.`,
	Args: cobra.MaximumNArgs(1),
	Run:  qualityFunc,
}

func qualityFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()
	c := root.GetContainer()
	if c == nil {
		logger.Fatal("Container not initialized")
	}

	input := root.SharedFlags.Input
	if len(args) == 1 {
		input = args[0]
	}

	report, err := Report(c.GetPipeline(), c.NewScanner(root.SharedFlags.Charset), input,
		root.SharedFlags.Output, os.Stdin, cmd.OutOrStdout(), logger)
	if err != nil {
		logger.Fatalf("Error assessing statement: %v", err)
	}
	logger.WithField(logging.FieldScore, report.Score).Debug("Quality assessed")
}

// Report reads input, scores it and writes the report as JSON to output.
// Empty input is reported, not rejected.
func Report(a Assessor, src common.TextSource, input, output string, stdin io.Reader, stdout io.Writer, logger logging.Logger) (models.QualityReport, error) {
	text, err := common.ReadInput(src, input, stdin)
	if err != nil {
		return models.QualityReport{}, err
	}
	report := a.Assess(text)
	if report.HasIssue(ocrquality.IssueEmptyText) {
		logger.WithField(logging.FieldInputFile, input).Warn("Input contains no text")
	}
	err = common.WriteOutput(output, stdout, func(w io.Writer) error {
		return internalcommon.WriteJSON(w, report)
	})
	return report, err
}
