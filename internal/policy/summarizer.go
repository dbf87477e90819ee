package policy

import (
	"context"

	"go.uber.org/zap"

	"github.com/sendbackhq/sendback/internal/llm"
)

// Summarizer normalizes free policy text into Policy fields using the text
// backend when one is configured, falling back to the static table. Lookup
// failures never surface to the caller; they degrade to defaults.
type Summarizer struct {
	store   *Store
	backend llm.Backend
	log     *zap.Logger
}

// NewSummarizer creates a summarizer. backend may be nil, in which case the
// static table answers every request.
func NewSummarizer(store *Store, backend llm.Backend, logger *zap.Logger) *Summarizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Summarizer{store: store, backend: backend, log: logger}
}

// Summarize resolves merchant policy fields from text (supplied or seeded).
func (s *Summarizer) Summarize(ctx context.Context, merchant, text string) Policy {
	snippet := text
	if snippet == "" {
		snippet = s.store.TextFor(merchant)
	}

	if s.backend == nil {
		return s.store.Resolve(merchant)
	}

	fields, _, err := s.backend.SummarizePolicy(ctx, snippet)
	if err != nil {
		s.log.Warn("policy.summarize.fallback",
			zap.String("merchant", merchant), zap.Error(err))
		return s.store.Resolve(merchant)
	}

	p := Policy{
		Merchant:           merchant,
		WindowDays:         fields.WindowDays,
		RestockingFeePct:   fields.RestockingFeePct,
		MailAllowed:        fields.MailAllowed,
		InStoreAllowed:     fields.InStoreAllowed,
		ReturnBarSupported: fields.ReturnBarSupported,
		RequiresRMA:        fields.RequiresRMA,
		Notes:              fields.Notes,
		PortalURL:          fields.PortalURL,
	}
	if p.WindowDays <= 0 {
		p.WindowDays = DefaultWindowDays
	}
	if p.PortalURL == "" {
		if seeded, ok := s.store.Lookup(merchant); ok {
			p.PortalURL = seeded.PortalURL
		}
	}
	return p
}
