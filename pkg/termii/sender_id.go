package termii

import "context"

// SenderID manages the alphanumeric sender IDs of the integration.
type SenderID struct {
	transport *transport
}

func (s *SenderID) Fetch(ctx context.Context) (*Response, error) {
	return s.transport.get(ctx, "fetch sender ids", EndpointFetchSenderIDs)
}

// Request asks Termii to approve a new sender ID.
func (s *SenderID) Request(ctx context.Context, payload SenderIDRequest) (*Response, error) {
	return s.transport.post(ctx, "request sender id", EndpointRequestSenderID, payload)
}
