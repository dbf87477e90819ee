package returns

import (
	"time"

	"github.com/sendbackhq/sendback/constants"
	"github.com/sendbackhq/sendback/internal/entity"
	"github.com/sendbackhq/sendback/internal/policy"
)

// Eligibility is the outcome of the return-eligibility decision table.
type Eligibility struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

// Evaluate decides whether a return may still be initiated. pol is nil when
// no policy record resolved for the merchant; that case permits the return
// (downstream surfaces still enforce the deadline). The rules run in order:
//
//  1. past the stored deadline → denied
//  2. unresolvable policy → allowed
//  3. policy denies both channels → denied
//  4. otherwise allowed
func Evaluate(order *entity.Order, pol *policy.Policy, evalDate time.Time) Eligibility {
	if deadline, err := time.Parse(dateLayout, order.DeadlineDate); err == nil {
		if truncateToDate(evalDate).After(deadline) {
			return Eligibility{Allowed: false, Reason: constants.ReasonPastWindow}
		}
	}

	if pol == nil {
		return Eligibility{Allowed: true}
	}

	if !pol.MailAllowed && !pol.InStoreAllowed {
		return Eligibility{Allowed: false, Reason: constants.ReasonReturnsNotAccepted}
	}

	return Eligibility{Allowed: true}
}
