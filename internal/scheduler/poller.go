package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"SignalSentinel/internal/collector"
	"SignalSentinel/internal/metrics"
	"SignalSentinel/internal/model"
	"SignalSentinel/internal/notifier"
	"SignalSentinel/internal/recorder"
	"SignalSentinel/internal/strategy"
)

// maxCommandLines caps how many signal lines a chat reply carries.
const maxCommandLines = 20

// Snapshot is the outcome of the latest completed cycle.
type Snapshot struct {
	CycleID  string
	At       time.Time
	Status   string
	Analysis *model.Analysis
	Signals  []model.SignalEvent
}

// CycleResult describes one FETCH_AND_PROCESS pass.
type CycleResult struct {
	CycleID string
	Status  string
	Bars    int
	Signals []model.SignalEvent
	Err     error
}

// Poller alternates between fetching and processing a symbol and sleeping
// until the next activation of its schedule.
type Poller struct {
	Collector    *collector.Collector
	Params       strategy.Params
	Reporter     notifier.Reporter
	Recorder     recorder.Recorder
	Metrics      *metrics.Recorder
	Schedule     cron.Schedule
	FetchTimeout time.Duration

	now    func() time.Time
	mu     sync.RWMutex
	latest Snapshot
}

// NewPoller creates a Poller. A nil recorder or metrics recorder is
// replaced with a no-op or private instance.
func NewPoller(col *collector.Collector, params strategy.Params, rep notifier.Reporter, rec recorder.Recorder,
	m *metrics.Recorder, sched cron.Schedule, fetchTimeout time.Duration) *Poller {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if m == nil {
		m = metrics.New()
	}
	if fetchTimeout <= 0 {
		fetchTimeout = 30 * time.Second
	}
	return &Poller{
		Collector:    col,
		Params:       params,
		Reporter:     rep,
		Recorder:     rec,
		Metrics:      m,
		Schedule:     sched,
		FetchTimeout: fetchTimeout,
		now:          time.Now,
	}
}

// Run executes cycles until ctx is cancelled. Cancellation is checked after
// every cycle and interrupts the sleep between cycles.
func (p *Poller) Run(ctx context.Context) error {
	log.Info().Str("symbol", p.Collector.Symbol).Msg("poller started")
	for {
		p.RunOnce(ctx)
		if err := ctx.Err(); err != nil {
			log.Info().Msg("poller stopped")
			return err
		}
		if err := p.sleep(ctx); err != nil {
			log.Info().Msg("poller stopped")
			return err
		}
	}
}

func (p *Poller) sleep(ctx context.Context) error {
	now := p.now()
	next := p.Schedule.Next(now)
	if next.IsZero() {
		return errors.New("schedule has no further activations")
	}
	log.Debug().Time("next", next).Msg("sleeping until next cycle")

	timer := time.NewTimer(next.Sub(now))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RunOnce fetches, analyses and reports one cycle. Fetch failures, empty
// data and panics end the cycle without propagating.
func (p *Poller) RunOnce(ctx context.Context) (res CycleResult) {
	res.CycleID = uuid.NewString()
	started := p.now()
	logger := log.With().Str("cycle", res.CycleID).Logger()

	var analysis *model.Analysis
	defer func() {
		if r := recover(); r != nil {
			res.Status = metrics.StatusPanic
			res.Err = fmt.Errorf("panic: %v", r)
			logger.Error().Str("stack", string(debug.Stack())).Err(res.Err).Msg("cycle panicked")
		}
		p.finish(started, res, analysis)
	}()

	fetchCtx, cancel := context.WithTimeout(ctx, p.FetchTimeout)
	fetchStart := time.Now()
	series, err := p.Collector.Collect(fetchCtx)
	cancel()
	p.Metrics.RecordFetch(time.Since(fetchStart).Seconds())
	if err != nil {
		res.Status = metrics.StatusError
		res.Err = err
		logger.Error().Err(err).Msg("fetch failed")
		return res
	}
	if err := ctx.Err(); err != nil {
		res.Status = metrics.StatusError
		res.Err = err
		return res
	}
	if len(series) == 0 {
		res.Status = metrics.StatusEmpty
		logger.Info().Msg("No new data to process")
		return res
	}

	analysis, err = strategy.Run(p.Collector.Symbol, series, p.Params)
	if err != nil {
		res.Status = metrics.StatusError
		res.Err = fmt.Errorf("pipeline: %w", err)
		logger.Error().Err(res.Err).Msg("pipeline failed")
		return res
	}
	res.Bars = len(analysis.Bars)
	res.Signals = strategy.Signals(analysis)
	res.Status = metrics.StatusOK

	if len(res.Signals) > 0 && p.Reporter != nil {
		if err := p.Reporter.Report(ctx, res.Signals); err != nil {
			logger.Error().Err(err).Msg("report signals")
		}
	}
	logger.Info().Int("bars", res.Bars).Int("signals", len(res.Signals)).Msg("cycle complete")
	return res
}

// finish records the cycle outcome and publishes the snapshot.
func (p *Poller) finish(started time.Time, res CycleResult, analysis *model.Analysis) {
	p.Metrics.RecordCycle(res.Status)
	p.Metrics.SetBars(res.Bars)

	buys, sells := 0, 0
	for _, s := range res.Signals {
		p.Metrics.RecordSignal(string(s.Side))
		if s.Side == model.SideBuy {
			buys++
		} else {
			sells++
		}
	}

	evt := &recorder.CycleEvent{
		CycleID:   res.CycleID,
		Symbol:    p.Collector.Symbol,
		StartedAt: started,
		Bars:      res.Bars,
		Buys:      buys,
		Sells:     sells,
		Status:    res.Status,
	}
	if res.Err != nil {
		evt.Error = res.Err.Error()
	}
	if err := p.Recorder.RecordCycle(evt); err != nil {
		log.Error().Err(err).Msg("record cycle")
	}
	if analysis != nil {
		p.recordSignals(res.CycleID, analysis)
	}

	// keep the last good analysis visible when a cycle fails
	p.mu.Lock()
	defer p.mu.Unlock()
	if res.Status == metrics.StatusOK || p.latest.Analysis == nil {
		p.latest = Snapshot{
			CycleID:  res.CycleID,
			At:       started,
			Status:   res.Status,
			Analysis: analysis,
			Signals:  res.Signals,
		}
		return
	}
	p.latest.Status = res.Status
}

func (p *Poller) recordSignals(cycleID string, a *model.Analysis) {
	var recs []*recorder.SignalRecord
	for _, b := range a.Bars {
		var side model.Side
		switch {
		case b.BuySignal:
			side = model.SideBuy
		case b.SellSignal:
			side = model.SideSell
		default:
			continue
		}
		recs = append(recs, &recorder.SignalRecord{
			CycleID:       cycleID,
			Symbol:        a.Symbol,
			Side:          string(side),
			Price:         b.Close,
			BarTime:       b.Time,
			Engulfing:     string(b.Engulfing),
			Consolidation: string(b.Consolidation),
			SMA:           b.SMA,
			RSI:           b.RSI,
		})
	}
	if err := p.Recorder.RecordSignals(recs); err != nil {
		log.Error().Err(err).Int("signals", len(recs)).Msg("record signals")
	}
}

// Latest returns the most recent snapshot.
func (p *Poller) Latest() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest
}

// HandleCommand processes a chat command and returns a reply.
func (p *Poller) HandleCommand(command string) string {
	// group chats address commands as /status@BotName
	if i := strings.IndexByte(command, '@'); i > 0 {
		command = command[:i]
	}
	snap := p.Latest()
	switch command {
	case "/signals":
		if len(snap.Signals) == 0 {
			return "no signals in the latest cycle"
		}
		sigs := snap.Signals
		if len(sigs) > maxCommandLines {
			sigs = sigs[len(sigs)-maxCommandLines:]
		}
		return notifier.FormatSignalBatch(sigs)
	case "/status":
		bars, buys, sells := 0, 0, 0
		if snap.Analysis != nil {
			bars = len(snap.Analysis.Bars)
		}
		for _, s := range snap.Signals {
			if s.Side == model.SideBuy {
				buys++
			} else {
				sells++
			}
		}
		return notifier.FormatStatus(p.Collector.Symbol, snap.At, bars, buys, sells)
	default:
		return strings.Join([]string{
			"available commands:",
			"• /signals - signals from the latest cycle",
			"• /status - latest cycle summary",
		}, "\n")
	}
}
