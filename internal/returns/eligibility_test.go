package returns

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sendbackhq/sendback/constants"
	"github.com/sendbackhq/sendback/internal/entity"
	"github.com/sendbackhq/sendback/internal/policy"
)

func permissivePolicy() *policy.Policy {
	return &policy.Policy{Merchant: "Amazon", WindowDays: 30, MailAllowed: true, InStoreAllowed: true}
}

func TestEvaluateAllowedWithinWindow(t *testing.T) {
	order := &entity.Order{Merchant: "Amazon", DeadlineDate: "2024-01-31"}

	elig := Evaluate(order, permissivePolicy(), date("2024-01-20"))
	assert.True(t, elig.Allowed)
	assert.Empty(t, elig.Reason)
}

func TestEvaluateDeniedPastWindow(t *testing.T) {
	order := &entity.Order{Merchant: "Amazon", DeadlineDate: "2024-01-31"}

	elig := Evaluate(order, permissivePolicy(), date("2024-02-05"))
	assert.False(t, elig.Allowed)
	assert.Equal(t, constants.ReasonPastWindow, elig.Reason)
}

func TestEvaluateDeadlineDayStillAllowed(t *testing.T) {
	order := &entity.Order{Merchant: "Amazon", DeadlineDate: "2024-01-31"}

	elig := Evaluate(order, permissivePolicy(), date("2024-01-31"))
	assert.True(t, elig.Allowed)
}

func TestEvaluateUnknownPolicyAllowed(t *testing.T) {
	order := &entity.Order{Merchant: "Mystery Mart", DeadlineDate: "2099-01-01"}

	elig := Evaluate(order, nil, date("2024-01-01"))
	assert.True(t, elig.Allowed)
}

func TestEvaluatePastWindowBeatsUnknownPolicy(t *testing.T) {
	order := &entity.Order{Merchant: "Mystery Mart", DeadlineDate: "2024-01-31"}

	elig := Evaluate(order, nil, date("2024-02-05"))
	assert.False(t, elig.Allowed)
	assert.Equal(t, constants.ReasonPastWindow, elig.Reason)
}

func TestEvaluateRetailerDeniesBothChannels(t *testing.T) {
	order := &entity.Order{Merchant: "GameStop", DeadlineDate: "2099-01-01"}
	pol := &policy.Policy{Merchant: "GameStop", WindowDays: 15}

	elig := Evaluate(order, pol, date("2024-01-01"))
	assert.False(t, elig.Allowed)
	assert.Equal(t, constants.ReasonReturnsNotAccepted, elig.Reason)
}

func TestEvaluateMissingDeadlineSkipsWindowRule(t *testing.T) {
	order := &entity.Order{Merchant: "Amazon", DeadlineDate: ""}

	elig := Evaluate(order, permissivePolicy(), date("2024-01-01"))
	assert.True(t, elig.Allowed)
}
