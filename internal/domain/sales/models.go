package sales

import "time"

const (
	OutcomeConverted  = "converted"
	OutcomeFollowUp   = "follow_up"
	OutcomeNoInterest = "no_interest"
)

type Call struct {
	ID         string    `bson:"_id" json:"id"`
	EmployeeID string    `bson:"employeeId" json:"employeeId"`
	ClientName string    `bson:"clientName" json:"clientName"`
	Outcome    string    `bson:"outcome" json:"outcome"`
	DealValue  float64   `bson:"dealValue" json:"dealValue"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CallTime   time.Time `bson:"callTime" json:"callTime"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// Totals is the per-window sales summary consumed by performance
// snapshots.
type Totals struct {
	Calls       int     `json:"calls"`
	Conversions int     `json:"conversions"`
	Revenue     float64 `json:"revenue"`
	DealsClosed int     `json:"dealsClosed"`
}

// Summarize folds calls into window totals. Revenue and closed deals
// only count converted calls.
func Summarize(calls []*Call) Totals {
	var totals Totals
	for _, call := range calls {
		if call == nil {
			continue
		}
		totals.Calls++
		if call.Outcome == OutcomeConverted {
			totals.Conversions++
			totals.Revenue += call.DealValue
			if call.DealValue > 0 {
				totals.DealsClosed++
			}
		}
	}
	return totals
}

func ValidOutcome(outcome string) bool {
	switch outcome {
	case OutcomeConverted, OutcomeFollowUp, OutcomeNoInterest:
		return true
	}
	return false
}
