package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/innkeep/internal/model"
	"github.com/roach88/innkeep/internal/testutil"
)

func sampleTrace() []TraceEvent {
	return []TraceEvent{
		{Seq: 1, Op: OpInsertBooking, Target: "Lake Inn", Outcome: OutcomeOK},
		{Seq: 2, Op: OpInsertBooking, Target: "Other", Outcome: OutcomeOK},
		{Seq: 3, Op: OpSort, Target: "room", Outcome: OutcomeOK},
		{Seq: 4, Op: OpDeleteByName, Target: "Lake Inn", Outcome: OutcomeOK},
	}
}

func TestAssertTraceContains(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceContains(trace, Assertion{Op: OpSort}))
	assert.NoError(t, assertTraceContains(trace, Assertion{Op: OpInsertBooking, Target: "Other"}))

	err := assertTraceContains(trace, Assertion{Op: OpSort, Target: "name"})
	require.Error(t, err)
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertTraceContains, ae.Type)
	assert.Equal(t, "op sort on name", ae.Expected)
	assert.Contains(t, err.Error(), "[3] sort room -> ok")
}

func TestAssertTraceOrder(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceOrder(trace, Assertion{Ops: []string{OpInsertBooking, OpSort, OpDeleteByName}}))
	assert.NoError(t, assertTraceOrder(trace, Assertion{Ops: []string{OpInsertBooking, OpDeleteByName}}))

	err := assertTraceOrder(trace, Assertion{Ops: []string{OpDeleteByName, OpSort}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete_by_name (pos 4) should be before sort (pos 3)")

	err = assertTraceOrder(trace, Assertion{Ops: []string{OpInsertBooking, OpReload}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing op: reload")
}

func TestAssertTraceCount(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceCount(trace, Assertion{Op: OpInsertBooking, Count: 2}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Op: OpReload, Count: 0}))

	err := assertTraceCount(trace, Assertion{Op: OpSort, Count: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 occurrences of sort")
	assert.Contains(t, err.Error(), "Actual: 1 occurrences")
}

func TestBuildWhereClause(t *testing.T) {
	sql, args, err := buildWhereClause(map[string]interface{}{
		"room":        "101",
		"name":        "Lake Inn",
		"housekeeper": true,
	})
	require.NoError(t, err)
	assert.Equal(t, "housekeeper = ? AND name = ? AND room = ?", sql)
	assert.Equal(t, []interface{}{int64(1), "Lake Inn", "101"}, args)

	sql, args, err = buildWhereClause(nil)
	require.NoError(t, err)
	assert.Empty(t, sql)
	assert.Nil(t, args)

	_, _, err = buildWhereClause(map[string]interface{}{"name; DROP TABLE bookings": "x"})
	assert.Error(t, err)
}

func TestStateValuesEqual(t *testing.T) {
	tests := []struct {
		name     string
		expected interface{}
		actual   interface{}
		want     bool
	}{
		{"string", "Lake Inn", "Lake Inn", true},
		{"string_bytes", "Lake Inn", []byte("Lake Inn"), true},
		{"string_mismatch", "Lake Inn", "Other", false},
		{"int_vs_int64", 80, int64(80), true},
		{"int_mismatch", 80, int64(81), false},
		{"bool_true", true, int64(1), true},
		{"bool_false", false, int64(0), true},
		{"bool_mismatch", true, int64(0), false},
		{"string_vs_int", "80", int64(80), false},
		{"both_nil", nil, nil, true},
		{"nil_expected", nil, int64(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stateValuesEqual(tt.expected, tt.actual))
		})
	}
}

func TestEvaluateAssertions_FinalState(t *testing.T) {
	st, path := testutil.OpenStore(t)
	ctx := context.Background()
	require.NoError(t, st.InsertBooking(ctx, model.Booking{GuestName: "Lake Inn", Room: "101", BookingCost: 100}))
	require.NoError(t, st.InsertBooking(ctx, model.Booking{GuestName: "Lake Inn", Room: "103", Housekeeper: true}))
	require.NoError(t, st.InsertBooking(ctx, model.Booking{GuestName: "Other", Room: "102"}))

	actx := &AssertionContext{Path: path, Ctx: ctx}
	assertions := []Assertion{
		// passing
		{Type: AssertFinalState, Table: "bookings", Where: map[string]interface{}{"room": "101"},
			Expect: map[string]interface{}{"name": "Lake Inn", "bookingCost": 100, "housekeeper": false}},
		{Type: AssertFinalCount, Table: "bookings", Where: map[string]interface{}{"name": "Lake Inn"}, Count: 2},
		{Type: AssertFinalCount, Table: "customers", Count: 0},
		// failing
		{Type: AssertFinalState, Table: "bookings", Where: map[string]interface{}{"name": "Lake Inn"},
			Expect: map[string]interface{}{"room": "101"}},
		{Type: AssertFinalState, Table: "bookings", Where: map[string]interface{}{"name": "Nobody"},
			Expect: map[string]interface{}{"room": "101"}},
		{Type: AssertFinalState, Table: "bookings", Where: map[string]interface{}{"room": "102"},
			Expect: map[string]interface{}{"rating": 5}},
		{Type: AssertFinalState, Table: "bookings", Where: map[string]interface{}{"room": "103"},
			Expect: map[string]interface{}{"housekeeper": false}},
		{Type: AssertFinalCount, Table: "bookings", Count: 1},
		{Type: AssertFinalCount, Table: "bookings; DROP TABLE bookings", Count: 1},
	}

	errs := EvaluateAssertions(NewResult(), assertions, actx)

	require.Len(t, errs, 6)
	assert.Contains(t, errs[0], "2 rows matched (assertion is ambiguous)")
	assert.Contains(t, errs[1], "row not found")
	assert.Contains(t, errs[2], `column "rating" not present`)
	assert.Contains(t, errs[3], `column "housekeeper" = false`)
	assert.Contains(t, errs[4], "Actual: 3 rows")
	assert.Contains(t, errs[5], "invalid table name")

	count, err := st.CountBookingsByName(ctx, "Lake Inn")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "assertions only read")
}

func TestEvaluateAssertions_NoDatabase(t *testing.T) {
	errs := EvaluateAssertions(NewResult(), []Assertion{
		{Type: AssertFinalCount, Table: "bookings"},
		{Type: AssertTraceCount, Op: OpReload},
	}, nil)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "requires database context")
}
