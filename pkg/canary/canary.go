package canary

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/exoscale/syslog-canary/pkg/probe"
)

// Prober is the health check the loop drives once per cycle.
type Prober interface {
	Exec() (probe.Status, error)
}

// Canary probes at a fixed cadence. Probe time is subtracted from the
// sleep so cycle starts stay period-aligned; a probe or recovery that
// outruns the frequency delays the next cycle instead of queueing one.
type Canary struct {
	Frequency time.Duration
	Probe     Prober
}

// Run probes until ctx is cancelled; the first probe fires immediately.
// Probe and recovery failures are logged and survived, cancellation is
// the only way out.
func (c *Canary) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			log.Info("interrupted, shutting down")
			return nil
		default:
		}

		start := time.Now()

		if _, err := c.Probe.Exec(); err != nil {
			log.WithError(err).Error("probe cycle failed")
			log.Debugf("probe failure detail: %+v", err)
		}

		remaining := c.Frequency - time.Since(start)
		if remaining <= 0 {
			// overdue, probe again right away
			continue
		}

		select {
		case <-time.After(remaining):
		case <-ctx.Done():
			log.Info("interrupted, shutting down")
			return nil
		}
	}
}
