package converter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	result, err := Extract("NETFLIX.COM 866-579-7172 CA - $15.49 on 07/01/2025")
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, TransactionTypeExpense, result.Transactions[0].Type)
	assert.Equal(t, 15.49, result.Transactions[0].Amount)
}

// isolate runs the test from an empty directory with an empty home so no
// stray config.yaml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STMT_CSV_DELIMITER", "")
	return dir
}

func TestConvertTextToCSV(t *testing.T) {
	dir := isolate(t)
	input := filepath.Join(dir, "statement.txt")
	output := filepath.Join(dir, "statement.csv")
	require.NoError(t, os.WriteFile(input,
		[]byte("STARBUCKS STORE 10001 AUSTIN TX - $4.75 on 07/11/2025\nSHELL OIL 5744 $38.10 07/14/2025\n"), 0600))

	require.NoError(t, ConvertTextToCSV(input, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "STARBUCKS STORE 10001 AUSTIN TX")
	assert.Contains(t, lines[2], "SHELL OIL 5744")
}

func TestConvertTextToCSV_ConfiguredDelimiter(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("csv:\n  delimiter: \";\"\n"), 0600))
	input := filepath.Join(dir, "statement.txt")
	output := filepath.Join(dir, "statement.csv")
	require.NoError(t, os.WriteFile(input, []byte("SHELL OIL 5744 $38.10 07/14/2025\n"), 0600))

	require.NoError(t, ConvertTextToCSV(input, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Date;Description;"), lines[0])
	assert.Contains(t, lines[1], ";SHELL OIL 5744;")
}

func TestConvertTextToCSV_MissingFile(t *testing.T) {
	dir := isolate(t)
	assert.Error(t, ConvertTextToCSV(filepath.Join(dir, "missing.txt"), filepath.Join(dir, "out.csv")))
}

func TestBatchConvert(t *testing.T) {
	isolate(t)
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "csv")
	require.NoError(t, os.WriteFile(filepath.Join(in, "a.txt"), []byte("TARGET #1234 - $25.99 on 07/02/2025"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(in, "b.ocr"), []byte("@@@@"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(in, "c.pdf"), []byte("%PDF"), 0600))

	count, err := BatchConvert(in, out)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.FileExists(t, filepath.Join(out, "a.csv"))
	assert.FileExists(t, filepath.Join(out, "b.csv"))
	assert.NoFileExists(t, filepath.Join(out, "c.csv"))
}
