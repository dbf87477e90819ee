package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sendbackhq/sendback/internal/llm"
)

type stubBackend struct {
	fields llm.PolicyFields
	err    error
	calls  int
}

func (s *stubBackend) ExtractFromText(context.Context, string) (llm.OrderFields, []byte, error) {
	return llm.OrderFields{}, nil, errors.New("not used")
}

func (s *stubBackend) ExtractFromImage(context.Context, []byte, string) (llm.OrderFields, []byte, error) {
	return llm.OrderFields{}, nil, errors.New("not used")
}

func (s *stubBackend) SummarizePolicy(context.Context, string) (llm.PolicyFields, []byte, error) {
	s.calls++
	return s.fields, nil, s.err
}

func TestSummarizeWithoutBackendUsesTable(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	s := NewSummarizer(store, nil, nil)
	p := s.Summarize(context.Background(), "Best Buy", "")
	assert.Equal(t, 15, p.WindowDays)
	assert.Equal(t, float64(15), p.RestockingFeePct)
}

func TestSummarizeBackendFailureDegradesToTable(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	backend := &stubBackend{err: errors.New("backend down")}
	s := NewSummarizer(store, backend, nil)

	p := s.Summarize(context.Background(), "Walmart", "some policy text")
	assert.Equal(t, 1, backend.calls)
	assert.Equal(t, 90, p.WindowDays)
}

func TestSummarizeBackendFailureUnknownMerchantDefaults(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	s := NewSummarizer(store, &stubBackend{err: errors.New("boom")}, nil)
	p := s.Summarize(context.Background(), "Totally Unknown", "")
	assert.Equal(t, DefaultWindowDays, p.WindowDays)
	assert.True(t, p.MailAllowed)
}

func TestSummarizeMapsBackendFields(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	backend := &stubBackend{fields: llm.PolicyFields{
		WindowDays:     14,
		MailAllowed:    true,
		InStoreAllowed: false,
		RequiresRMA:    true,
		Notes:          "summarized",
	}}
	s := NewSummarizer(store, backend, nil)

	p := s.Summarize(context.Background(), "B&H", "mail returns with RMA within 30 days")
	assert.Equal(t, 14, p.WindowDays)
	assert.True(t, p.RequiresRMA)
	assert.Equal(t, "summarized", p.Notes)
	// portal comes from the seed when the model omits it
	assert.NotEmpty(t, p.PortalURL)
}

func TestSummarizeZeroWindowGetsDefault(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	backend := &stubBackend{fields: llm.PolicyFields{MailAllowed: true, InStoreAllowed: true}}
	s := NewSummarizer(store, backend, nil)

	p := s.Summarize(context.Background(), "Whoever", "text")
	assert.Equal(t, DefaultWindowDays, p.WindowDays)
}
