package enhancer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/statement-ocr/internal/textparser"
)

func TestNewProvider(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: "claude-ish"})
	assert.Error(t, err)

	_, err = NewProvider(context.Background(), Config{Provider: ProviderGemini})
	assert.Error(t, err, "missing API key")

	_, err = NewProvider(context.Background(), Config{Provider: ProviderOpenAI})
	assert.Error(t, err, "missing API key")

	p, err := NewProvider(context.Background(), Config{Provider: "OpenAI", APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, p.Name())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, 10, cfg.RequestsPerMinute)
	assert.Equal(t, 500, cfg.DailyLimit)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay)
	assert.Equal(t, 3, cfg.MaxAttempts)
}

func TestBuildPrompt(t *testing.T) {
	text := "STARBUCKS STORE 10001 AUSTIN TX - $4.75 on 07/11/2025"
	candidates := []textparser.Candidate{
		{RawDescription: "STARBUCKS STORE 10001 AUSTIN TX", RawAmount: "$4.75", RawDate: "07/11/2025"},
	}

	prompt := BuildPrompt(text, candidates)
	assert.Contains(t, prompt, "DESCRIPTION - $AMOUNT on MM/DD/YYYY")
	assert.Contains(t, prompt, "already detected")
	assert.Contains(t, prompt, "STARBUCKS STORE 10001 AUSTIN TX - $4.75 on 07/11/2025\n")
	assert.True(t, strings.HasSuffix(prompt, text+"\n"))

	bare := BuildPrompt("nothing", nil)
	assert.NotContains(t, bare, "already detected")
}

func TestRequestLimiter_DailyCap(t *testing.T) {
	l := NewRequestLimiter(0, 2)
	day := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return day }

	ctx := context.Background()
	require.NoError(t, l.Wait(ctx))
	require.NoError(t, l.Wait(ctx))
	assert.ErrorIs(t, l.Wait(ctx), ErrDailyLimitReached)
	assert.Equal(t, 2, l.Used())

	day = day.Add(24 * time.Hour)
	assert.Equal(t, 0, l.Used())
	assert.NoError(t, l.Wait(ctx))
	assert.Equal(t, 1, l.Used())
}

func TestRequestLimiter_PerMinuteRespectsContext(t *testing.T) {
	l := NewRequestLimiter(1, 0)
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx))
}

func TestRequestLimiter_CancelledWaitKeepsBudget(t *testing.T) {
	l := NewRequestLimiter(1, 2)
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.Error(t, l.Wait(ctx))
	assert.Equal(t, 1, l.Used())
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), 0))
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, sleepContext(ctx, time.Hour))
}
