package request

// Outcome is the result of resolving a review decision against live stock.
type Outcome struct {
	Status      Status
	ApprovedQty *int
	// Downgraded is set when an approval became a rejection for lack of stock.
	Downgraded bool
}

// Released is the number of units leaving stock.
func (o Outcome) Released() int {
	if o.ApprovedQty == nil {
		return 0
	}
	return *o.ApprovedQty
}

// Resolve bounds the release by what was asked for and what is on hand.
// desired overrides the requested quantity when non-nil. An approval that
// bounds to zero or less is silently turned into a rejection.
func Resolve(requested, onHand int, d Decision, desired *int) Outcome {
	if d == DecisionReject {
		return Outcome{Status: StatusRejected}
	}
	want := requested
	if desired != nil {
		want = *desired
	}
	bounded := min(want, requested, onHand)
	if bounded <= 0 {
		return Outcome{Status: StatusRejected, Downgraded: true}
	}
	st := StatusApproved
	if bounded < requested {
		st = StatusPartiallyApproved
	}
	return Outcome{Status: st, ApprovedQty: &bounded}
}
