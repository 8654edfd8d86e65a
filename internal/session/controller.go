package session

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"wolfdice/internal/config"
	"wolfdice/internal/ledger"
	"wolfdice/internal/model"
	"wolfdice/internal/monitoring"
	"wolfdice/internal/notifier"
	"wolfdice/internal/odds"
	"wolfdice/internal/recorder"
	"wolfdice/internal/render"
	"wolfdice/internal/strategy"
)

// Client is the wager-submission collaborator. Implementations live in
// internal/client; tests use fakes.
type Client interface {
	PlaceBet(ctx context.Context, req model.BetRequest) (*model.BetResult, error)
	Balance(ctx context.Context, currency string) (float64, error)
}

// Controller runs the session round loop. It is the single mutator of
// the ledger and strategy state; everything it hands outward is a
// read-only projection.
type Controller struct {
	cfg      *config.Config
	client   Client
	recorder recorder.Recorder
	display  *render.Console
	notify   *notifier.TelegramNotifier
	rng      *rand.Rand
	retry    RetryPolicy

	statusMu    sync.Mutex
	lastStats   model.SessionStats
	lastHistory []model.RoundRecord
	hasStatus   bool
}

// NewController wires a session controller. display and tn may be nil.
// rng may be nil, in which case a time-seeded source is used.
func NewController(cfg *config.Config, cl Client, rec recorder.Recorder, display *render.Console, tn *notifier.TelegramNotifier, rng *rand.Rand) *Controller {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Controller{
		cfg:      cfg,
		client:   cl,
		recorder: rec,
		display:  display,
		notify:   tn,
		rng:      rng,
		retry:    RetryPolicy{MaxAttempts: cfg.Retry.MaxAttempts},
	}
}

// Status returns the latest round snapshot for display, and whether a
// round has been resolved yet this session.
func (c *Controller) Status() (model.SessionStats, bool) {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()
	return c.lastStats, c.hasStatus
}

// History returns a copy of the trailing rounds for display, oldest
// first.
func (c *Controller) History() []model.RoundRecord {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()
	return append([]model.RoundRecord(nil), c.lastHistory...)
}

// Run executes one full session: rounds until stop-loss, take-profit,
// retry exhaustion or cancellation. The returned summary is complete in
// every case; the error is non-nil only for retry exhaustion.
func (c *Controller) Run(ctx context.Context, session int) (model.SessionSummary, error) {
	cfg := c.cfg
	base := cfg.BaseBet

	sum := model.SessionSummary{
		ID:             uuid.NewString(),
		Currency:       cfg.Currency,
		ActiveStrategy: cfg.Strategy.Name,
	}

	// Baseline balance, once per session. Betting never depends on it.
	if balance, err := c.client.Balance(ctx, cfg.Currency); err != nil {
		log.Printf("[WARN] baseline balance unavailable: %v", err)
	} else {
		sum.StartBalance = balance
	}
	if c.display != nil {
		c.display.SessionStart(sum.StartBalance, cfg.Strategy.Name, session)
	}
	if err := c.recorder.RecordSessionStart(&sum); err != nil {
		log.Printf("[ERROR] record session start: %v", err)
	}

	led := ledger.New()
	calc := strategy.NewCalculator(cfg.Params(), c.rng)
	sel := strategy.NewSelector(cfg.Variant(), cfg.Cycle(), cfg.SwitchMode(), cfg.Strategy.LossStreakTrigger)
	st := strategy.NewState(base)
	wager := base
	failures := 0

	var reason model.EndReason
	var runErr error

loop:
	for {
		select {
		case <-ctx.Done():
			reason = model.EndInterrupted
			break loop
		default:
		}

		// Halt conditions are only checked at round boundaries.
		if led.Profit <= cfg.StopLoss {
			reason = model.EndStopLoss
			log.Printf("[INFO] stop-loss triggered: %+.8f", led.Profit)
			break loop
		}
		if led.Profit >= cfg.TakeProfit {
			reason = model.EndTakeProfit
			log.Printf("[INFO] take-profit triggered: %+.8f", led.Profit)
			break loop
		}

		amount := c.clampCeiling(wager)

		chance := cfg.Chance
		if ov := calc.ChanceOverride(sel.Active()); ov > 0 {
			chance = ov
		}
		rule, threshold := odds.ForChance(chance, cfg.Mode(), c.rng)

		res, err := c.client.PlaceBet(ctx, model.BetRequest{
			Currency:   cfg.Currency,
			Amount:     amount,
			Rule:       rule,
			Threshold:  threshold,
			Multiplier: odds.PayoutMultiplier(rule, threshold),
		})
		if err != nil {
			// Transient failure: the round is not counted, state is
			// unchanged, wait the delay and retry.
			failures++
			monitoring.ObserveSubmitFailure()
			log.Printf("[WARN] place bet failed (attempt %d): %v", failures, err)
			if c.retry.Exhausted(failures) {
				reason = model.EndSubmitError
				runErr = fmt.Errorf("submission retries exhausted after %d attempts: %w", failures, err)
				break loop
			}
			if !c.sleep(ctx) {
				reason = model.EndInterrupted
				break loop
			}
			continue
		}
		failures = 0

		won := res.Outcome == model.OutcomeWin
		st.LastWager = res.AmountCharged

		var delta float64
		if won {
			led.ApplyWin(res.Profit)
			delta = res.Profit
		} else {
			led.ApplyLoss(res.AmountCharged)
			delta = -res.AmountCharged
		}

		next := calc.Next(sel.Active(), won, led.TotalRounds, led.LastLossAmount, st)
		if !won && cfg.CoverLoss {
			// Next wager must at least recoup the streak plus one base
			// wager of profit; the ceiling still clamps afterwards.
			if cover := led.LossStreakTotal + base; next < cover {
				next = strategy.Round8(cover)
			}
		}

		if sel.AfterRound(won) {
			// Switching reseeds the strategy state and the wager to the
			// base amount. Profit and history are untouched.
			st.Reset(base)
			next = base
			monitoring.ObserveSwitch()
			log.Printf("[INFO] strategy switched: %s", sel.Active())
		}
		wager = next

		record := model.RoundRecord{
			Round:       led.TotalRounds,
			Threshold:   threshold,
			Rule:        rule,
			ResultValue: res.ResultValue,
			Wager:       res.AmountCharged,
			NextWager:   c.clampCeiling(wager),
			Outcome:     res.Outcome,
			DeltaProfit: delta,
			Strategy:    string(sel.Active()),
		}
		led.Record(record)
		c.publish(sum.ID, record, led.Stats(string(sel.Active())), led.History())

		if !c.sleep(ctx) {
			reason = model.EndInterrupted
			break loop
		}
	}

	sum.Profit = led.Profit
	sum.TotalRounds = led.TotalRounds
	sum.Won = led.Won
	sum.Lost = led.Lost
	sum.Elapsed = led.Elapsed()
	sum.ActiveStrategy = string(sel.Active())
	sum.Reason = reason

	monitoring.ObserveSessionEnd(string(reason))
	if err := c.recorder.RecordSessionEnd(&sum); err != nil {
		log.Printf("[ERROR] record session end: %v", err)
	}
	if c.display != nil {
		c.display.History(led.History())
		c.display.Summary(sum)
	}
	if c.notify != nil {
		if err := c.notify.SendWithRetry(ctx, notifier.FormatSessionReport(&sum)); err != nil {
			log.Printf("[ERROR] send session report: %v", err)
		}
	}
	return sum, runErr
}

// clampCeiling replaces a wager that exceeds the configured ceiling.
// A zero ceiling means unbounded.
func (c *Controller) clampCeiling(wager float64) float64 {
	if ceiling := c.cfg.MaxWager(); ceiling > 0 && wager > ceiling {
		return ceiling
	}
	return wager
}

func (c *Controller) publish(sessionID string, record model.RoundRecord, stats model.SessionStats, history []model.RoundRecord) {
	c.statusMu.Lock()
	c.lastStats = stats
	c.lastHistory = append(c.lastHistory[:0], history...)
	c.hasStatus = true
	c.statusMu.Unlock()

	monitoring.ObserveRound(string(record.Outcome), record.Wager, stats.Profit)

	if c.display != nil {
		c.display.Round(record, stats)
	}
	if err := c.recorder.RecordRound(&recorder.RoundEvent{
		SessionID: sessionID,
		Record:    record,
		Profit:    stats.Profit,
	}); err != nil {
		log.Printf("[ERROR] record round: %v", err)
	}
}

// sleep waits the configured round delay; false means ctx was cancelled.
func (c *Controller) sleep(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(c.cfg.RoundDelay()):
		return true
	}
}
