// Package returns holds the deadline and eligibility decision logic. The
// functions are pure; callers supply the evaluation date so behavior is
// reproducible in tests.
package returns

import "time"

const dateLayout = "2006-01-02"

// WindowResolver resolves a merchant's return window in days.
type WindowResolver interface {
	WindowDays(merchant string) int
}

// ComputeDeadline derives the return deadline and signed days-remaining for
// a purchase. An unparseable purchase date substitutes evalDate; this never
// fails.
func ComputeDeadline(purchaseDateISO, merchant string, evalDate time.Time, windows WindowResolver) (deadlineISO string, daysRemaining int) {
	today := truncateToDate(evalDate)

	purchase, err := time.Parse(dateLayout, purchaseDateISO)
	if err != nil {
		purchase = today
	}

	deadline := purchase.AddDate(0, 0, windows.WindowDays(merchant))
	daysRemaining = int(deadline.Sub(today).Hours() / 24)
	return deadline.Format(dateLayout), daysRemaining
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
