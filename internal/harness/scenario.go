package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/innkeep/internal/model"
)

// Scenario defines a front desk scenario.
// Scenarios drive a desk through a flow of operations against a real
// database and assert on the resulting trace and final table contents.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Setup contains steps run before the main flow.
	// Setup steps must succeed; a failing setup step aborts the run.
	Setup []Step `yaml:"setup,omitempty"`

	// Flow contains the main steps, each optionally checked by an expect clause.
	Flow []Step `yaml:"flow"`

	// Assertions validate the final trace and table contents.
	// Supported types: trace_contains, trace_order, trace_count, final_state,
	// final_count
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one operation on the desk.
type Step struct {
	// Op selects the operation; see the Op constants.
	Op string `yaml:"op"`

	// Booking is the record added by insert_booking.
	Booking *model.Booking `yaml:"booking,omitempty"`

	// Customer is the record added by insert_customer.
	Customer *model.Customer `yaml:"customer,omitempty"`

	// Name is the guest name removed by delete_by_name.
	Name string `yaml:"name,omitempty"`

	// Key is the sort key text given to sort ("name", "room", "rating").
	Key string `yaml:"key,omitempty"`

	// Table and Write select the writes broken by fail_writes and repaired
	// by restore_writes. Write is "insert" or "delete".
	Table string `yaml:"table,omitempty"`
	Write string `yaml:"write,omitempty"`

	// Expect is checked after the step runs. If nil, nothing is checked.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies the observable outcome of one step.
type Expect struct {
	// Outcome is the expected outcome class; empty means "ok".
	Outcome string `yaml:"outcome,omitempty"`

	// Removed is the expected deletion count (delete_by_name only).
	Removed *int `yaml:"removed,omitempty"`

	// Bookings lists the guest names held in memory after the step, in
	// order. If nil, not checked; an empty list expects no bookings.
	Bookings []string `yaml:"bookings,omitempty"`

	// Customers lists the customer names held in memory after the step.
	Customers []string `yaml:"customers,omitempty"`
}

// Assertion validates the trace or the final table contents.
type Assertion struct {
	// Type specifies the assertion type:
	// - "trace_contains": an event with Op (and Target, if set) exists
	// - "trace_order": Ops appear in order
	// - "trace_count": Op appears exactly Count times
	// - "final_state": exactly one row of Table matches Where and has Expect
	// - "final_count": exactly Count rows of Table match Where
	Type string `yaml:"type"`

	// Op is the step operation (trace_contains, trace_count).
	Op string `yaml:"op,omitempty"`

	// Target narrows trace_contains to one guest name, sort key or table.
	Target string `yaml:"target,omitempty"`

	// Ops is the expected operation order (trace_order).
	Ops []string `yaml:"ops,omitempty"`

	// Table is the database table (final_state, final_count).
	Table string `yaml:"table,omitempty"`

	// Where specifies column filters (final_state, final_count).
	// All fields must match exactly.
	Where map[string]interface{} `yaml:"where,omitempty"`

	// Expect contains expected column values (final_state).
	// Subset match - only specified columns are validated.
	Expect map[string]interface{} `yaml:"expect,omitempty"`

	// Count is the expected number of events or rows.
	Count int `yaml:"count,omitempty"`
}

// Step operations.
const (
	OpInsertBooking  = "insert_booking"
	OpInsertCustomer = "insert_customer"
	OpDeleteByName   = "delete_by_name"
	OpSort           = "sort"
	OpReload         = "reload"
	OpFailWrites     = "fail_writes"
	OpRestoreWrites  = "restore_writes"
)

// Step outcomes recorded in the trace.
const (
	OutcomeOK             = "ok"
	OutcomeStorageWrite   = "storage_write"
	OutcomeStorageInit    = "storage_init"
	OutcomeUnknownSortKey = "unknown_sort_key"
	OutcomeError          = "error"
)

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFinalState    = "final_state"
	AssertFinalCount    = "final_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	for i, step := range s.Setup {
		if err := validateStep(fmt.Sprintf("setup[%d]", i), step); err != nil {
			return err
		}
		if step.Expect != nil {
			return fmt.Errorf("setup[%d]: expect is not allowed in setup", i)
		}
	}

	for i, step := range s.Flow {
		if err := validateStep(fmt.Sprintf("flow[%d]", i), step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep checks that step carries the fields its operation needs.
func validateStep(where string, step Step) error {
	switch step.Op {
	case "":
		return fmt.Errorf("%s: op is required", where)
	case OpInsertBooking:
		if step.Booking == nil {
			return fmt.Errorf("%s: booking is required for %s", where, step.Op)
		}
	case OpInsertCustomer:
		if step.Customer == nil {
			return fmt.Errorf("%s: customer is required for %s", where, step.Op)
		}
	case OpDeleteByName:
		if step.Name == "" {
			return fmt.Errorf("%s: name is required for %s", where, step.Op)
		}
	case OpSort:
		if step.Key == "" {
			return fmt.Errorf("%s: key is required for %s", where, step.Op)
		}
	case OpReload:
	case OpFailWrites, OpRestoreWrites:
		if step.Table == "" || step.Write == "" {
			return fmt.Errorf("%s: table and write are required for %s", where, step.Op)
		}
	default:
		return fmt.Errorf("%s: unknown op %q", where, step.Op)
	}

	if step.Expect != nil && step.Expect.Removed != nil && step.Op != OpDeleteByName {
		return fmt.Errorf("%s.expect: removed is only valid for %s", where, OpDeleteByName)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("assertions[%d]: ops list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalState:
		if a.Table == "" {
			return fmt.Errorf("assertions[%d]: table is required for final_state", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
	case AssertFinalCount:
		if a.Table == "" {
			return fmt.Errorf("assertions[%d]: table is required for final_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for final_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
