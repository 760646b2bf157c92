// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/popuweekendclub/storefront/lib/clock"
	"github.com/popuweekendclub/storefront/lib/ticketapi"
)

// Hold budget bounds. The upstream releases unpaid holds on its own
// schedule; the client-side budget must stay inside it.
const (
	MinHoldBudget     = 10 * time.Minute
	MaxHoldBudget     = 15 * time.Minute
	DefaultHoldBudget = 15 * time.Minute

	// MaxQuantityCeiling is the most tickets one order may ever hold.
	MaxQuantityCeiling = 5
	DefaultMaxQuantity = MaxQuantityCeiling
)

// Gateway is the subset of the ticketing API the controller drives.
// *ticketapi.Client implements it.
type Gateway interface {
	CheckAvailability(ctx context.Context) ([]ticketapi.Availability, error)
	CreateReservation(ctx context.Context, eventID int64, quantity int) (ticketapi.Reservation, error)
	FinalizeOrder(ctx context.Context, orderID string, request ticketapi.FinalizeRequest) (ticketapi.Finalized, error)
	VerifyPayment(ctx context.Context, orderID string) (ticketapi.PaymentStatus, error)
}

// Config holds configuration for a Controller.
type Config struct {
	// Gateway performs upstream calls. Required.
	Gateway Gateway

	// HoldBudget is the countdown length after a reservation.
	// Defaults to DefaultHoldBudget; must be within
	// [MinHoldBudget, MaxHoldBudget].
	HoldBudget time.Duration

	// MaxQuantity is the quantity ceiling. Defaults to
	// DefaultMaxQuantity.
	MaxQuantity int

	// Context is the parent of every gateway call. Cancelling it
	// aborts calls in flight. Defaults to context.Background().
	Context context.Context

	// Clock drives the countdown. Defaults to clock.Real().
	Clock clock.Clock

	// Logger receives stage transitions. Defaults to slog.Default().
	Logger *slog.Logger
}

// Controller owns one buyer's order session. All methods are safe for
// concurrent use; state changes are applied one at a time under a
// single lock, whether they come from intents, gateway responses, or
// countdown ticks.
type Controller struct {
	gateway     Gateway
	holdBudget  time.Duration
	maxQuantity int
	ctx         context.Context
	cancel      context.CancelFunc
	clock       clock.Clock
	logger      *slog.Logger

	changes chan struct{}

	// calls tracks gateway goroutines so Stop can wait for them.
	calls sync.WaitGroup

	mu      sync.Mutex
	session Session

	// attempt increments on every reset. Gateway responses and
	// countdown ticks carry the attempt they were started in.
	attempt uint64

	// inFlight names the gateway operation in progress, or "".
	inFlight string

	countdown           *clock.Timer
	countdownGeneration uint64
}

// New creates a Controller in the Browsing stage.
func New(config Config) (*Controller, error) {
	if config.Gateway == nil {
		return nil, errors.New("checkout: gateway is required")
	}

	holdBudget := config.HoldBudget
	if holdBudget == 0 {
		holdBudget = DefaultHoldBudget
	}
	if holdBudget < MinHoldBudget || holdBudget > MaxHoldBudget {
		return nil, fmt.Errorf("checkout: hold budget %v outside [%v, %v]", holdBudget, MinHoldBudget, MaxHoldBudget)
	}

	maxQuantity := config.MaxQuantity
	if maxQuantity == 0 {
		maxQuantity = DefaultMaxQuantity
	}
	if maxQuantity < 1 || maxQuantity > MaxQuantityCeiling {
		return nil, fmt.Errorf("checkout: max quantity %d outside [1, %d]", maxQuantity, MaxQuantityCeiling)
	}

	parent := config.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{
		gateway:     config.Gateway,
		holdBudget:  holdBudget,
		maxQuantity: maxQuantity,
		ctx:         ctx,
		cancel:      cancel,
		clock:       clk,
		logger:      logger,
		changes:     make(chan struct{}, 1),
		session:     Session{Stage: Browsing, Quantity: 1},
	}, nil
}

// HoldBudget returns the configured countdown length.
func (controller *Controller) HoldBudget() time.Duration {
	return controller.holdBudget
}

// Snapshot returns a copy of the current session.
func (controller *Controller) Snapshot() Snapshot {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return Snapshot{
		Session:          controller.session.clone(),
		RemainingSeconds: controller.remainingSecondsLocked(),
		Busy:             controller.inFlight != "",
		MaxQuantity:      controller.maxQuantity,
	}
}

// Changes returns a channel that receives after any change to the
// session, including countdown ticks. Notifications coalesce: a
// receiver that falls behind sees one pending notification, not one
// per change, and should re-read Snapshot.
func (controller *Controller) Changes() <-chan struct{} {
	return controller.changes
}

// Stop cancels the countdown and any gateway call in flight, then
// waits for those calls to return. Their results are discarded. The
// controller must not be used after Stop; calling Stop again is a
// no-op.
func (controller *Controller) Stop() {
	controller.mu.Lock()
	controller.stopCountdownLocked()
	controller.attempt++
	controller.inFlight = ""
	controller.mu.Unlock()

	controller.cancel()
	controller.calls.Wait()
}

// notifyLocked signals observers without blocking.
func (controller *Controller) notifyLocked() {
	select {
	case controller.changes <- struct{}{}:
	default:
	}
}

// setStageLocked moves the session to next and logs the transition.
func (controller *Controller) setStageLocked(next Stage) {
	previous := controller.session.Stage
	controller.session.Stage = next
	if previous != next {
		controller.logger.Info("checkout stage changed",
			"stage_from", previous.String(),
			"stage_to", next.String(),
			"order_id", controller.session.Reservation.OrderID,
		)
	}
}

// resetLocked discards the session in full and returns to Browsing.
// In-flight calls become stale.
func (controller *Controller) resetLocked() {
	controller.stopCountdownLocked()
	controller.attempt++
	controller.inFlight = ""
	previous := controller.session.Stage
	controller.session = Session{Stage: previous, Quantity: 1}
	controller.setStageLocked(Browsing)
}

// startCountdownLocked sets the deadline one hold budget from now and
// schedules the first tick.
func (controller *Controller) startCountdownLocked() {
	controller.stopCountdownLocked()
	controller.session.Deadline = controller.clock.Now().Add(controller.holdBudget)
	controller.scheduleTickLocked()
}

func (controller *Controller) stopCountdownLocked() {
	controller.countdownGeneration++
	if controller.countdown != nil {
		controller.countdown.Stop()
		controller.countdown = nil
	}
}

// scheduleTickLocked arms the next tick one second from now, or at the
// deadline if that is sooner.
func (controller *Controller) scheduleTickLocked() {
	generation := controller.countdownGeneration
	delay := min(time.Second, clock.Until(controller.clock, controller.session.Deadline))
	if delay <= 0 {
		delay = time.Nanosecond
	}
	controller.countdown = controller.clock.AfterFunc(delay, func() {
		controller.tick(generation)
	})
}

func (controller *Controller) tick(generation uint64) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if generation != controller.countdownGeneration || !controller.session.Stage.expires() {
		return
	}
	if controller.clock.Now().Before(controller.session.Deadline) {
		controller.scheduleTickLocked()
		controller.notifyLocked()
		return
	}

	controller.logger.Info("reservation hold expired",
		"stage", controller.session.Stage.String(),
		"order_id", controller.session.Reservation.OrderID,
	)
	controller.resetLocked()
	controller.session.LastError = ErrHoldExpired
	controller.notifyLocked()
}

// remainingSecondsLocked is the hold time left, rounded up to whole
// seconds.
func (controller *Controller) remainingSecondsLocked() int {
	if !controller.session.Stage.expires() || controller.session.Deadline.IsZero() {
		return 0
	}
	return clock.WholeSeconds(clock.Until(controller.clock, controller.session.Deadline))
}
