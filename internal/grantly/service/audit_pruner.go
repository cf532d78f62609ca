package service

import (
	"context"
	"log"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/grantlyhq/grantly/internal/grantly/store"
)

// AuditPruner is the out-of-band retention policy for the audit ledger: it
// periodically deletes records older than a configurable horizon. Nothing
// else in the system removes audit rows.
//
// A retention of 0 keeps everything and the pruner never starts.
type AuditPruner struct {
	retentionStore store.AuditRetention
	retention      time.Duration
	interval       time.Duration
	clock          clockwork.Clock
	logger         *log.Logger
	cancel         context.CancelFunc
	done           chan struct{}
}

type PrunerConfig struct {
	// RetentionDays is how many days of audit history to keep.
	// 0 means keep everything (pruner will not start).
	RetentionDays int

	// IntervalHours is how often the pruner runs. Defaults to 24.
	IntervalHours int
}

func NewAuditPruner(rs store.AuditRetention, cfg PrunerConfig, clock clockwork.Clock, logger *log.Logger) *AuditPruner {
	interval := time.Duration(cfg.IntervalHours) * time.Hour
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &AuditPruner{
		retentionStore: rs,
		retention:      time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		interval:       interval,
		clock:          clock,
		logger:         logger,
		done:           make(chan struct{}),
	}
}

// Start begins the background loop: one immediate prune, then one per
// interval. The loop exits when ctx is cancelled or Stop is called.
func (p *AuditPruner) Start(ctx context.Context) {
	if p.retention <= 0 {
		p.logger.Printf("audit pruner disabled (retention=0)")
		close(p.done)
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)

	go p.loop(ctx)

	p.logger.Printf("audit pruner started (retention=%dd, interval=%dh)",
		int(p.retention.Hours()/24), int(p.interval.Hours()))
}

// Stop signals the pruner to exit and waits for it to finish.
func (p *AuditPruner) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	<-p.done
}

func (p *AuditPruner) loop(ctx context.Context) {
	defer close(p.done)

	p.prune(ctx)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.prune(ctx)
		}
	}
}

func (p *AuditPruner) prune(ctx context.Context) {
	cutoff := p.clock.Now().UTC().Add(-p.retention)
	deleted, err := p.retentionStore.PruneOlderThan(ctx, cutoff)
	if err != nil {
		p.logger.Printf("audit prune error: %v", err)
		return
	}
	if deleted > 0 {
		p.logger.Printf("audit prune: deleted %d records older than %s",
			deleted, cutoff.Format(time.RFC3339))
	}
}
