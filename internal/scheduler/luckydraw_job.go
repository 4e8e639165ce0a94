// internal/scheduler/luckydraw_job.go
package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jong1uk/Auction-Back/internal/services"
)

// DrawActivator periodically opens READY lucky draws. Double-firing is
// harmless because the activation batch only touches rows still in READY.
type DrawActivator struct {
	draws    *services.LuckyDrawService
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewDrawActivator(draws *services.LuckyDrawService, interval time.Duration) *DrawActivator {
	return &DrawActivator{
		draws:    draws,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the ticker loop. One activation runs immediately so a
// restart does not delay pending draws by a full interval.
func (a *DrawActivator) Start(ctx context.Context) {
	go a.run(ctx)
}

func (a *DrawActivator) run(ctx context.Context) {
	defer close(a.done)

	a.activate()

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.activate()
		case <-a.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (a *DrawActivator) activate() {
	activated, err := a.draws.ActivateReadyDraws(time.Now())
	if err != nil {
		logrus.WithError(err).Error("Lucky draw activation failed")
		return
	}
	if activated > 0 {
		logrus.WithField("activated", activated).Info("Lucky draw activation run complete")
	}
}

// Stop signals the loop and waits for it to exit.
func (a *DrawActivator) Stop() {
	close(a.stop)
	<-a.done
}
