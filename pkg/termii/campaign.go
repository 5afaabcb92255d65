package termii

import "context"

type Campaign struct {
	transport *transport
}

// Fetch returns the campaigns available on the integration.
func (c *Campaign) Fetch(ctx context.Context) (*Response, error) {
	return c.transport.get(ctx, "fetch campaigns", EndpointFetchCampaigns)
}
