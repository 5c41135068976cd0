package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-ocr/internal/models"
)

func TestParseStatementDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"slash four digit year", "02/10/2025", "2025-02-10", false},
		{"slash short year", "2/10/25", "2025-02-10", false},
		{"dash four digit year", "07-23-2025", "2025-07-23", false},
		{"dash short year", "7-1-24", "2024-07-01", false},
		{"single digit short year", "1/5/5", "2005-01-05", false},
		{"surrounding whitespace", "  07/11/2025 ", "2025-07-11", false},
		{"month out of range", "13/01/2025", "", true},
		{"day out of range", "02/30/2025", "", true},
		{"three digit year", "02/10/202", "", true},
		{"not a date", "Pending", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatementDate(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ToISODate(got))
		})
	}
}

func TestNormalizeStatementDate(t *testing.T) {
	now := time.Date(2025, time.August, 3, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "2025-02-10", NormalizeStatementDate("2/10/25", now))
	assert.Equal(t, "2025-02-10", NormalizeStatementDate("02/10/2025", now))
	assert.Equal(t, models.PendingDate, NormalizeStatementDate("Pending", now))
	assert.Equal(t, "2025-08-03", NormalizeStatementDate("", now))
	assert.Equal(t, "2025-08-03", NormalizeStatementDate("99/99/2025", now))
}
