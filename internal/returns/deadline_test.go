package returns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubWindows map[string]int

func (s stubWindows) WindowDays(merchant string) int {
	if d, ok := s[merchant]; ok {
		return d
	}
	return 30
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeDeadline(t *testing.T) {
	windows := stubWindows{"Amazon": 30, "Best Buy": 15}

	deadline, days := ComputeDeadline("2024-01-01", "Amazon", date("2024-01-20"), windows)
	assert.Equal(t, "2024-01-31", deadline)
	assert.Equal(t, 11, days)
}

func TestComputeDeadlinePastWindow(t *testing.T) {
	windows := stubWindows{"Amazon": 30}

	deadline, days := ComputeDeadline("2024-01-01", "Amazon", date("2024-02-05"), windows)
	assert.Equal(t, "2024-01-31", deadline)
	assert.Equal(t, -5, days)
}

func TestComputeDeadlineUnknownMerchantDefaults(t *testing.T) {
	deadline, days := ComputeDeadline("2024-03-01", "Some Corner Shop", date("2024-03-01"), stubWindows{})
	assert.Equal(t, "2024-03-31", deadline)
	assert.Equal(t, 30, days)
}

func TestComputeDeadlineUnparseableDateSubstitutesToday(t *testing.T) {
	today := date("2024-06-10")

	deadline, days := ComputeDeadline("not-a-date", "Amazon", today, stubWindows{"Amazon": 30})
	assert.Equal(t, "2024-07-10", deadline)
	assert.Equal(t, 30, days)

	deadline, days = ComputeDeadline("", "Amazon", today, stubWindows{"Amazon": 30})
	assert.Equal(t, "2024-07-10", deadline)
	assert.Equal(t, 30, days)
}

func TestComputeDeadlineWindowPerMerchant(t *testing.T) {
	windows := stubWindows{"Best Buy": 15}

	deadline, days := ComputeDeadline("2024-01-01", "Best Buy", date("2024-01-10"), windows)
	assert.Equal(t, "2024-01-16", deadline)
	assert.Equal(t, 6, days)
}
