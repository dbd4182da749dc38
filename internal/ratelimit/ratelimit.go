// internal/ratelimit/ratelimit.go
package ratelimit

import "time"

// BatchLimiter bounds outbound sends to at most `limit` per `interval`,
// measured from the start of the current batch rather than a true
// sliding window. When a batch fills faster than the interval, the next
// Wait sleeps the remainder; a batch that took longer than the interval
// rolls straight into the next one. Good enough for courtesy rate
// limiting against a third-party webhook.
type BatchLimiter struct {
    limit    int
    interval time.Duration

    count int
    start time.Time

    now   func() time.Time
    sleep func(time.Duration)
}

func NewBatchLimiter(limit int, interval time.Duration) *BatchLimiter {
    l := &BatchLimiter{
        limit:    limit,
        interval: interval,
        now:      time.Now,
        sleep:    time.Sleep,
    }
    l.start = l.now()
    return l
}

// Wait blocks until the next send is allowed to start. Not safe for
// concurrent use; each dispatch run owns its own limiter.
func (l *BatchLimiter) Wait() {
    if l.count >= l.limit {
        elapsed := l.now().Sub(l.start)
        if elapsed < l.interval {
            l.sleep(l.interval - elapsed)
        }
        l.start = l.now()
        l.count = 0
    }
    l.count++
}
