package sales

import "testing"

func TestSummarize(t *testing.T) {
	calls := []*Call{
		{Outcome: OutcomeConverted, DealValue: 1200},
		{Outcome: OutcomeConverted, DealValue: 0},
		{Outcome: OutcomeFollowUp, DealValue: 900},
		{Outcome: OutcomeNoInterest},
		nil,
	}

	totals := Summarize(calls)
	if totals.Calls != 4 {
		t.Fatalf("expected 4 calls, got %d", totals.Calls)
	}
	if totals.Conversions != 2 {
		t.Fatalf("expected 2 conversions, got %d", totals.Conversions)
	}
	if totals.Revenue != 1200 {
		t.Fatalf("expected 1200 revenue from converted calls only, got %v", totals.Revenue)
	}
	if totals.DealsClosed != 1 {
		t.Fatalf("expected 1 closed deal, got %d", totals.DealsClosed)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	totals := Summarize(nil)
	if totals != (Totals{}) {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}
