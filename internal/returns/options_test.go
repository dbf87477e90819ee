package returns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sendbackhq/sendback/internal/policy"
)

func TestBuildOptionsBothChannels(t *testing.T) {
	pol := policy.Policy{MailAllowed: true, InStoreAllowed: true}

	opts := BuildOptions("Amazon", pol)
	require.Len(t, opts, 2)
	assert.Equal(t, "mail", opts[0].ID)
	assert.Equal(t, "dropoff", opts[1].ID)
}

func TestBuildOptionsReturnBarLabel(t *testing.T) {
	pol := policy.Policy{InStoreAllowed: true, ReturnBarSupported: true}

	opts := BuildOptions("Nordstrom", pol)
	require.Len(t, opts, 1)
	assert.Equal(t, "dropoff", opts[0].ID)
	assert.Contains(t, opts[0].Label, "Return Bar")
}

func TestBuildOptionsNeitherChannelFallsBackToPortal(t *testing.T) {
	pol := policy.Policy{PortalURL: "https://example.com/returns"}

	opts := BuildOptions("GameStop", pol)
	require.Len(t, opts, 1)
	assert.Equal(t, "merchant_portal", opts[0].ID)
	assert.Equal(t, "https://example.com/returns", opts[0].URL)
}

func TestBuildOptionsPortalSearchLinkWhenUnconfigured(t *testing.T) {
	opts := BuildOptions("Some Shop", policy.Policy{})
	require.Len(t, opts, 1)
	assert.Equal(t, "merchant_portal", opts[0].ID)
	assert.Equal(t, "https://www.google.com/search?q=Some+Shop+return+portal", opts[0].URL)
}
