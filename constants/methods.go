package constants

// Return methods accepted by the initiate endpoint.
const (
	MethodMail    = "mail"
	MethodDropoff = "dropoff"
)

// IsReturnMethod reports whether m is a known return method.
func IsReturnMethod(m string) bool {
	return m == MethodMail || m == MethodDropoff
}

// Denial reasons returned by the eligibility evaluator.
const (
	ReasonPastWindow         = "Past the return window"
	ReasonReturnsNotAccepted = "Retailer does not allow returns"
)
