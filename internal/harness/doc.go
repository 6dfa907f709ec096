// Package harness runs front desk scenarios described in YAML.
//
// A scenario drives a desk through a sequence of operations against a real
// SQLite file, records a trace of what the desk held after every step, and
// checks expectations against that trace and the final tables.
//
// # Scenario Format
//
//	name: delete_all_matching
//	description: "Deleting a name removes every booking under it"
//	setup:
//	  - op: insert_booking
//	    booking: { name: Lake Inn, room: "101", booking_cost: 100 }
//	flow:
//	  - op: delete_by_name
//	    name: Lake Inn
//	    expect:
//	      removed: 1
//	      bookings: []
//	  - op: reload
//	assertions:
//	  - type: trace_count
//	    op: delete_by_name
//	    count: 1
//	  - type: final_count
//	    table: bookings
//	    where: { name: Lake Inn }
//	    count: 0
//
// # Operations
//
//   - insert_booking, insert_customer: add a record through the desk
//   - delete_by_name: delete every booking with the given guest name
//   - sort: reorder bookings in memory by key
//   - reload: close the desk and open a new one on the same file
//   - fail_writes, restore_writes: break or repair inserts or deletes on a
//     table (see testutil.InjectFailure)
//
// Failures never stop a flow. They appear as the step's outcome
// (storage_write, unknown_sort_key, ...), which an expect clause can check.
//
// # Assertion Types
//
//   - trace_contains: an event with the op (and target) exists
//   - trace_order: ops appear in the given order
//   - trace_count: an op appears exactly N times
//   - final_state: exactly one row matches and holds the expected columns
//   - final_count: exactly N rows match
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/delete_all_matching.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
