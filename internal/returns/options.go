package returns

import (
	"net/url"

	"github.com/sendbackhq/sendback/constants"
	"github.com/sendbackhq/sendback/internal/policy"
)

// Option is one actionable way to start a return.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	CTA   string `json:"cta"`
	URL   string `json:"url,omitempty"`
}

// BuildOptions lists the return methods a merchant's policy allows, in a
// fixed order. When neither mail nor in-store is allowed, the merchant
// portal is offered instead so the caller never gets zero options.
func BuildOptions(merchant string, pol policy.Policy) []Option {
	var opts []Option
	if pol.MailAllowed {
		opts = append(opts, Option{
			ID:    constants.MethodMail,
			Label: "Mail it back (prepaid label)",
			CTA:   "Get label",
		})
	}
	if pol.InStoreAllowed {
		label := "Drop off in store"
		if pol.ReturnBarSupported {
			label = "Drop at a Return Bar (no box/label)"
		}
		opts = append(opts, Option{
			ID:    constants.MethodDropoff,
			Label: label,
			CTA:   "Find locations",
		})
	}
	if len(opts) == 0 {
		opts = append(opts, Option{
			ID:    "merchant_portal",
			Label: "Open store return portal",
			CTA:   "Open",
			URL:   PortalURL(merchant, pol),
		})
	}
	return opts
}

// PortalURL is the policy's configured portal, or a web search built from
// the merchant name.
func PortalURL(merchant string, pol policy.Policy) string {
	if pol.PortalURL != "" {
		return pol.PortalURL
	}
	return "https://www.google.com/search?q=" + url.QueryEscape(merchant+" return portal")
}
