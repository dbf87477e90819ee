// Package policy holds the per-merchant return-policy table. The table is
// loaded once at start-up from an embedded seed and never mutated, so lookups
// are safe from any request goroutine.
package policy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed policies.json
var seedJSON []byte

// Policy is the per-merchant return configuration.
type Policy struct {
	Merchant           string  `json:"merchant"`
	WindowDays         int     `json:"window_days"`
	RestockingFeePct   float64 `json:"restocking_fee_pct"`
	MailAllowed        bool    `json:"mail_allowed"`
	InStoreAllowed     bool    `json:"in_store_allowed"`
	ReturnBarSupported bool    `json:"return_bar_supported"`
	RequiresRMA        bool    `json:"requires_rma"`
	Notes              string  `json:"notes"`
	PortalURL          string  `json:"portal_url,omitempty"`
	Text               string  `json:"text,omitempty"` // source policy prose for summarization
}

// DefaultWindowDays applies when a merchant has no seed entry.
const DefaultWindowDays = 30

// Default is the documented policy for unknown merchants: 30-day window,
// both channels allowed, no fees.
func Default(merchant string) Policy {
	return Policy{
		Merchant:       merchant,
		WindowDays:     DefaultWindowDays,
		MailAllowed:    true,
		InStoreAllowed: true,
		Notes:          "30-day returns (default).",
	}
}

// Store is an immutable case-insensitive merchant → policy table.
type Store struct {
	byMerchant map[string]Policy
}

// NewStore loads the embedded seed table.
func NewStore() (*Store, error) {
	return NewStoreFrom(seedJSON)
}

// NewStoreFrom builds a store from raw JSON; split out for tests.
func NewStoreFrom(raw []byte) (*Store, error) {
	var entries []Policy
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse policy seed: %w", err)
	}
	m := make(map[string]Policy, len(entries))
	for _, p := range entries {
		if p.Merchant == "" {
			continue
		}
		m[strings.ToLower(p.Merchant)] = p
	}
	return &Store{byMerchant: m}, nil
}

// Lookup resolves a merchant's policy; ok is false for unknown merchants.
func (s *Store) Lookup(merchant string) (Policy, bool) {
	p, ok := s.byMerchant[strings.ToLower(strings.TrimSpace(merchant))]
	return p, ok
}

// Resolve returns the merchant's policy or the documented default.
func (s *Store) Resolve(merchant string) Policy {
	if p, ok := s.Lookup(merchant); ok {
		return p
	}
	return Default(merchant)
}

// WindowDays returns the merchant's return window, defaulting for unknowns.
func (s *Store) WindowDays(merchant string) int {
	if p, ok := s.Lookup(merchant); ok && p.WindowDays > 0 {
		return p.WindowDays
	}
	return DefaultWindowDays
}

// TextFor returns the merchant's policy prose for summarization.
func (s *Store) TextFor(merchant string) string {
	if p, ok := s.Lookup(merchant); ok && p.Text != "" {
		return p.Text
	}
	return "30-day returns."
}

// Merchants lists the seeded merchant names.
func (s *Store) Merchants() []string {
	out := make([]string, 0, len(s.byMerchant))
	for _, p := range s.byMerchant {
		out = append(out, p.Merchant)
	}
	return out
}
