package termii

import "context"

// Token triggers and verifies one-time passwords. Expiry and attempt
// counting happen on the Termii side; nothing is tracked locally.
type Token struct {
	transport *transport
}

// Send generates a pin and delivers it through payload.Channel. The pin_id
// in the response is what Verify expects.
func (t *Token) Send(ctx context.Context, payload SendTokenInput) (*Response, error) {
	return t.transport.post(ctx, "send token", EndpointSendToken, payload)
}

// Voice generates a pin and reads it out in a voice call. The pin can be
// checked with Verify.
func (t *Token) Voice(ctx context.Context, payload VoiceTokenInput) (*Response, error) {
	return t.transport.post(ctx, "voice token", EndpointVoiceToken, payload)
}

// VoiceCall reads a caller supplied code out in a voice call. Such codes
// cannot be checked with Verify.
func (t *Token) VoiceCall(ctx context.Context, payload VoiceCallInput) (*Response, error) {
	return t.transport.post(ctx, "voice call", EndpointVoiceCall, payload)
}

// Email sends a caller supplied code by email. Such codes cannot be checked
// with Verify.
func (t *Token) Email(ctx context.Context, payload EmailTokenInput) (*Response, error) {
	return t.transport.post(ctx, "email token", EndpointEmailToken, payload)
}

// InApp generates a pin and returns it in the response without delivering
// it anywhere.
func (t *Token) InApp(ctx context.Context, payload InAppTokenInput) (*Response, error) {
	return t.transport.post(ctx, "in-app token", EndpointInAppToken, payload)
}

// Verify checks pin against the token identified by pinID. The response
// says whether the token is verified or expired.
func (t *Token) Verify(ctx context.Context, pinID, pin string) (*Response, error) {
	return t.transport.post(ctx, "verify token", EndpointVerifyToken, verifyTokenRequest{
		PinID: pinID,
		Pin:   pin,
	})
}
