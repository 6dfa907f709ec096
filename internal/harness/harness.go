package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/roach88/innkeep/internal/collection"
	"github.com/roach88/innkeep/internal/desk"
	"github.com/roach88/innkeep/internal/model"
	"github.com/roach88/innkeep/internal/store"
	"github.com/roach88/innkeep/internal/testutil"
)

// Harness executes scenario steps against one desk.
type Harness struct {
	desk   *desk.Desk
	path   string
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh database file in its own temporary
// directory, removed when Run returns. A file rather than :memory: is used
// so reload can reopen it and fail_writes can reach it from a second
// connection.
//
// Execution flow:
// 1. Create a fresh database and open a desk on it
// 2. Execute setup steps (any failure aborts)
// 3. Execute flow steps, checking expect clauses
// 4. Evaluate assertions against the trace and the database
func Run(scenario *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "innkeep-harness-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario directory: %w", err)
	}
	defer os.RemoveAll(dir)

	ctx := context.Background()
	path := filepath.Join(dir, "scenario.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests

	d, err := desk.Open(ctx, path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open desk: %w", err)
	}

	h := &Harness{desk: d, path: path, logger: logger}
	defer func() {
		if err := h.desk.Close(); err != nil {
			h.logger.Error("error closing desk", "error", err)
		}
	}()

	result := NewResult()
	if err := h.executeSetup(ctx, scenario.Setup, result); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}

	h.executeFlow(ctx, scenario.Flow, result)

	actx := &AssertionContext{
		Path: path,
		Ctx:  ctx,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeSetup runs all setup steps. Setup steps are traced like flow
// steps but must succeed.
func (h *Harness) executeSetup(ctx context.Context, setup []Step, result *Result) error {
	for i, step := range setup {
		ev := h.execute(ctx, step, result)
		if ev.Outcome != OutcomeOK {
			return fmt.Errorf("setup step %d: %s failed: %s", i, step.Op, ev.Outcome)
		}
	}
	return nil
}

// executeFlow runs all flow steps and validates expect clauses.
// A step whose outcome differs from its expect clause fails the result
// but does not stop the flow.
func (h *Harness) executeFlow(ctx context.Context, flow []Step, result *Result) {
	for i, step := range flow {
		ev := h.execute(ctx, step, result)
		if step.Expect != nil {
			for _, msg := range checkExpect(step.Expect, ev) {
				result.AddError(fmt.Sprintf("flow[%d] %s: %s", i, step.Op, msg))
			}
		}
	}
}

// execute applies one step and records it in the trace. Failures become
// the event's outcome.
func (h *Harness) execute(ctx context.Context, step Step, result *Result) TraceEvent {
	ev := TraceEvent{Op: step.Op}

	opErr := h.apply(ctx, step, &ev)
	ev.Outcome = outcome(opErr)
	ev.Bookings = bookingNames(h.desk.Bookings())
	ev.Customers = customerNames(h.desk.Customers())
	ev = result.addEvent(ev)

	h.logger.Info("step completed",
		"seq", ev.Seq,
		"op", ev.Op,
		"target", ev.Target,
		"outcome", ev.Outcome,
	)
	if opErr != nil {
		h.logger.Debug("step error", "seq", ev.Seq, "error", opErr)
	}
	return ev
}

func (h *Harness) apply(ctx context.Context, step Step, ev *TraceEvent) error {
	switch step.Op {
	case OpInsertBooking:
		ev.Target = step.Booking.GuestName
		return h.desk.AddBooking(ctx, *step.Booking)

	case OpInsertCustomer:
		ev.Target = step.Customer.Name
		return h.desk.AddCustomer(ctx, *step.Customer)

	case OpDeleteByName:
		ev.Target = step.Name
		removed, err := h.desk.DeleteBookingsByName(ctx, step.Name)
		if err != nil {
			return err
		}
		ev.Removed = &removed
		return nil

	case OpSort:
		ev.Target = step.Key
		key, err := collection.ParseSortKey(step.Key)
		if err != nil {
			return err
		}
		h.desk.SortBookings(key)
		return nil

	case OpReload:
		return h.reopen(ctx)

	case OpFailWrites:
		ev.Target = step.Table + "." + step.Write
		return testutil.InjectFailure(h.path, step.Table, step.Write)

	case OpRestoreWrites:
		ev.Target = step.Table + "." + step.Write
		return testutil.RemoveFailure(h.path, step.Table, step.Write)

	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

// reopen replaces the desk with a fresh one loaded from the same file, as a
// restarted process would see it. On failure the old desk stays in place.
func (h *Harness) reopen(ctx context.Context) error {
	d, err := desk.Open(ctx, h.path, h.logger)
	if err != nil {
		return err
	}
	if err := h.desk.Close(); err != nil {
		h.logger.Error("error closing desk", "error", err)
	}
	h.desk = d
	return nil
}

// outcome classifies a step error for the trace.
func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case store.IsWriteError(err):
		return OutcomeStorageWrite
	case store.IsInitError(err):
		return OutcomeStorageInit
	case errors.Is(err, collection.ErrUnknownSortKey):
		return OutcomeUnknownSortKey
	default:
		return OutcomeError
	}
}

// checkExpect compares ev with exp and returns one message per mismatch.
func checkExpect(exp *Expect, ev TraceEvent) []string {
	var msgs []string

	want := exp.Outcome
	if want == "" {
		want = OutcomeOK
	}
	if ev.Outcome != want {
		msgs = append(msgs, fmt.Sprintf("expected outcome %s, got %s", want, ev.Outcome))
	}

	if exp.Removed != nil {
		switch {
		case ev.Removed == nil:
			msgs = append(msgs, fmt.Sprintf("expected %d removed, got none", *exp.Removed))
		case *ev.Removed != *exp.Removed:
			msgs = append(msgs, fmt.Sprintf("expected %d removed, got %d", *exp.Removed, *ev.Removed))
		}
	}

	if exp.Bookings != nil && !slices.Equal(exp.Bookings, ev.Bookings) {
		msgs = append(msgs, fmt.Sprintf("expected bookings %q, got %q", exp.Bookings, ev.Bookings))
	}
	if exp.Customers != nil && !slices.Equal(exp.Customers, ev.Customers) {
		msgs = append(msgs, fmt.Sprintf("expected customers %q, got %q", exp.Customers, ev.Customers))
	}

	return msgs
}

func bookingNames(bookings []model.Booking) []string {
	names := make([]string, len(bookings))
	for i, b := range bookings {
		names[i] = b.GuestName
	}
	return names
}

func customerNames(customers []model.Customer) []string {
	names := make([]string, len(customers))
	for i, c := range customers {
		names[i] = c.Name
	}
	return names
}
