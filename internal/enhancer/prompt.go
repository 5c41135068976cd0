package enhancer

import (
	"strings"

	"fjacquet/statement-ocr/internal/textparser"
)

const promptHeader = `You are reviewing the OCR transcription of a bank or credit card statement.
List every transaction you can find, one per line, in exactly this format:
DESCRIPTION - $AMOUNT on MM/DD/YYYY
For transactions without a posting date use exactly:
Pending | DESCRIPTION | Pending | $AMOUNT | $0.00
Do not add headers, totals, balances or commentary.
`

// BuildPrompt renders the statement text and the candidates already found.
func BuildPrompt(text string, candidates []textparser.Candidate) string {
	var sb strings.Builder
	sb.WriteString(promptHeader)

	if len(candidates) > 0 {
		sb.WriteString("\nTransactions already detected (confirm, correct or extend):\n")
		for _, c := range candidates {
			sb.WriteString(c.String())
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\nStatement text:\n")
	sb.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		sb.WriteString("\n")
	}
	return sb.String()
}
