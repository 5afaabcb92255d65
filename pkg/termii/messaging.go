package termii

import "context"

// Messaging sends text messages across the generic, DND and WhatsApp
// channels.
type Messaging struct {
	transport *transport
}

// Send delivers a single message. payload.To is sent as built, see
// Recipients.
func (m *Messaging) Send(ctx context.Context, payload Message) (*Response, error) {
	return m.transport.post(ctx, "send message", EndpointSendMessage, payload)
}

// SendBulk delivers one message to many recipients.
func (m *Messaging) SendBulk(ctx context.Context, payload BulkMessage) (*Response, error) {
	if payload.To == nil {
		payload.To = []string{}
	}
	return m.transport.post(ctx, "send bulk message", EndpointSendBulkMessage, payload)
}
