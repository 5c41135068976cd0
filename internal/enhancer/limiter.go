package enhancer

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrDailyLimitReached is returned once the daily request budget is spent.
var ErrDailyLimitReached = errors.New("daily enhancement request limit reached")

// RequestLimiter enforces a per-minute rate and a per-day request cap.
type RequestLimiter struct {
	limiter *rate.Limiter
	daily   int
	now     func() time.Time

	mu    sync.Mutex
	day   string
	count int
}

// NewRequestLimiter creates a limiter. Non-positive values disable the
// corresponding cap.
func NewRequestLimiter(perMinute, daily int) *RequestLimiter {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &RequestLimiter{
		limiter: rate.NewLimiter(limit, 1),
		daily:   daily,
		now:     time.Now,
	}
}

// Wait blocks until a request may be sent or ctx is done. A request only
// counts against the daily cap once the rate wait succeeds.
func (l *RequestLimiter) Wait(ctx context.Context) error {
	if err := l.takeDaily(false); err != nil {
		return err
	}
	if err := l.limiter.Wait(ctx); err != nil {
		return err
	}
	return l.takeDaily(true)
}

// Used returns the number of requests counted today.
func (l *RequestLimiter) Used() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.day != l.now().Format("2006-01-02") {
		return 0
	}
	return l.count
}

func (l *RequestLimiter) takeDaily(commit bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	today := l.now().Format("2006-01-02")
	if l.day != today {
		l.day = today
		l.count = 0
	}
	if l.daily > 0 && l.count >= l.daily {
		return ErrDailyLimitReached
	}
	if commit {
		l.count++
	}
	return nil
}
