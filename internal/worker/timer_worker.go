package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// TickInterval is the countdown resolution.
const TickInterval = 1 * time.Second

// SessionTicker advances all active test sessions by one second and
// reports how many sessions that tick ended. Implemented by
// service.TestService.
type SessionTicker interface {
	TickActiveSessions() int
}

// TimerWorker drives the remaining-time countdown. The session core
// never counts time on its own: this worker is the external ticking
// collaborator that decrements every active session and ends it at
// zero.
type TimerWorker struct {
	ticker SessionTicker
	log    zerolog.Logger
}

// NewTimerWorker creates a new TimerWorker.
func NewTimerWorker(ticker SessionTicker, log zerolog.Logger) *TimerWorker {
	return &TimerWorker{
		ticker: ticker,
		log:    log.With().Str("component", "timer_worker").Logger(),
	}
}

// Start runs the 1 Hz countdown loop until ctx is cancelled.
func (w *TimerWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", TickInterval).Msg("TimerWorker started")

	t := time.NewTicker(TickInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("TimerWorker stopped")
			return
		case <-t.C:
			if ended := w.ticker.TickActiveSessions(); ended > 0 {
				w.log.Info().Int("ended", ended).Msg("Sessions ended by countdown")
			}
		}
	}
}
