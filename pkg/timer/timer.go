package timer

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Track returns a function that, when executed, logs the duration at debug level.
// Usage: defer timer.Track("FunctionName")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		log.Debug().Str("op", name).Dur("took", time.Since(start)).Msg("timing")
	}
}

// Stopwatch measures several steps within one operation.
type Stopwatch struct {
	name  string
	start time.Time
	last  time.Time
}

func NewStopwatch(name string) *Stopwatch {
	now := time.Now()
	return &Stopwatch{name: name, start: now, last: now}
}

// Lap logs the time taken since the previous lap and returns it.
func (s *Stopwatch) Lap(step string) time.Duration {
	now := time.Now()
	elapsed := now.Sub(s.last)
	s.last = now
	log.Debug().Str("op", s.name).Str("step", step).Dur("took", elapsed).Dur("total", now.Sub(s.start)).Msg("timing")
	return elapsed
}

// Total logs and returns the time since the stopwatch started.
func (s *Stopwatch) Total() time.Duration {
	total := time.Since(s.start)
	log.Info().Str("op", s.name).Dur("took", total).Msg("finished")
	return total
}
