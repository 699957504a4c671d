package orchestrator

import (
	"context"
	"time"

	"github.com/vovakirdan/neon-runner/internal/evolution"
)

// triggerMilestone suspends the run and requests content for the score.
func (o *Orchestrator) triggerMilestone(now time.Time) {
	if !o.ctrl.Suspend() {
		return
	}
	score := o.ctrl.Score()
	o.evolving = true
	o.pending = true
	o.resumeAt = now.Add(o.cfg.Milestones.SuspendFor)
	o.log.Info("milestone reached", "score", score, "resume_at", o.resumeAt.Format(time.TimeOnly))

	o.abandonFetch()
	ctx, cancel := o.fetchContext()
	o.seq++
	f := &fetch{
		gen:     o.generation,
		seq:     o.seq,
		score:   score,
		cancel:  cancel,
		abandon: make(chan struct{}),
	}
	o.fetch = f

	go func() {
		defer cancel()
		rec, err := evolution.Fetch(ctx, o.generator, f.score)
		select {
		case <-f.abandon:
			return
		default:
		}
		select {
		case o.results <- fetchResult{gen: f.gen, seq: f.seq, rec: rec, err: err}:
		case <-f.abandon:
		case <-o.ctx.Done():
		}
	}()
}

// abandonFetch cancels the outstanding request, if any. Its result, should
// it still arrive, no longer matches o.fetch and is discarded.
func (o *Orchestrator) abandonFetch() {
	if o.fetch == nil {
		return
	}
	o.fetch.cancel()
	close(o.fetch.abandon)
	o.fetch = nil
}

// drain applies every result that has arrived since the last frame.
func (o *Orchestrator) drain() {
	for {
		select {
		case res := <-o.results:
			o.receive(res)
		default:
			return
		}
	}
}

// receive applies a result only if it answers the request the current
// milestone is waiting for.
func (o *Orchestrator) receive(res fetchResult) {
	f := o.fetch
	if !o.pending || f == nil || res.gen != o.generation || res.seq != f.seq {
		o.log.Debug("discarding stale evolution", "generation", res.gen, "current", o.generation, "seq", res.seq)
		return
	}
	if res.err != nil {
		o.log.Warn("evolution fetch failed, using fallback", "err", res.err)
	}
	o.apply(res.rec)
}

// apply shows a record and switches the world to its theme.
func (o *Orchestrator) apply(rec evolution.Record) {
	o.evolution = &rec
	o.evolutions++
	o.pending = false
	o.fetch = nil
	o.ctrl.SetTheme(rec.Theme())
	o.log.Info("sector evolved", "sector", rec.SectorName, "mutation", rec.MutationEffect, "theme", rec.ColorTheme)
}

// maybeResume continues the run once the delay has passed and the record is
// on screen. A request that never answers is replaced by the fallback.
func (o *Orchestrator) maybeResume(now time.Time) {
	if now.Before(o.resumeAt) {
		return
	}
	if o.pending {
		if now.Before(o.resumeAt.Add(o.cfg.Evolution.Timeout)) {
			return
		}
		o.log.Warn("evolution request overdue, using fallback")
		o.abandonFetch()
		o.apply(evolution.Fallback())
	}

	o.ctrl.Resume()
	o.evolving = false
	o.nextMilestone += o.cfg.Milestones.Step
	o.log.Debug("run resumed", "next_milestone", o.nextMilestone)
}

// fetchContext bounds a request by the configured timeout, if any.
func (o *Orchestrator) fetchContext() (context.Context, context.CancelFunc) {
	if o.cfg.Evolution.Timeout <= 0 {
		return context.WithCancel(o.ctx)
	}
	return context.WithTimeout(o.ctx, o.cfg.Evolution.Timeout)
}
