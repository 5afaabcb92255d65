// Package termii is a client for the Termii messaging API: SMS, WhatsApp,
// voice and email OTPs, sender IDs, phonebooks and campaigns.
//
// Every method issues exactly one HTTP request and returns the reply as a
// *Response whatever its status code. An error is returned only when the
// request could not be built or the transport failed (DNS, connection,
// timeout, cancelled context).
package termii

import "context"

// Client groups the resource facades and the account level endpoints. It is
// safe for concurrent use.
type Client struct {
	Messaging  *Messaging
	SenderID   *SenderID
	PhoneBooks *PhoneBooks
	Token      *Token
	Campaign   *Campaign

	transport *transport
}

// NewClient returns a client issuing requests against cfg.BaseURL with
// cfg.APIKey. cfg is not validated.
func NewClient(cfg Config, opts ...Option) *Client {
	t := newTransport(cfg, opts...)

	return &Client{
		Messaging:  &Messaging{transport: t},
		SenderID:   &SenderID{transport: t},
		PhoneBooks: &PhoneBooks{transport: t},
		Token:      &Token{transport: t},
		Campaign:   &Campaign{transport: t},
		transport:  t,
	}
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config {
	return c.transport.config
}

// GetBalance returns the wallet balance and its currency.
func (c *Client) GetBalance(ctx context.Context) (*Response, error) {
	return c.transport.get(ctx, "get balance", EndpointGetBalance)
}

// CheckNumberStatus detects whether phoneNumber is fake or has been ported
// to another network. phoneNumber is in international format, countryCode
// an ISO 3166 alpha-2 code.
func (c *Client) CheckNumberStatus(ctx context.Context, phoneNumber, countryCode string) (*Response, error) {
	return c.transport.get(ctx, "check number status", EndpointCheckNumberStatus,
		queryParam{key: "phone_number", value: phoneNumber},
		queryParam{key: "country_code", value: countryCode},
	)
}

// SearchNumber returns the network and DND status of phoneNumber.
func (c *Client) SearchNumber(ctx context.Context, phoneNumber string) (*Response, error) {
	return c.transport.get(ctx, "search number", EndpointSearchNumber,
		queryParam{key: "phone_number", value: phoneNumber},
	)
}

// MessageReports returns delivery reports for sent messages. An empty
// messageID lists every message; otherwise only that message is reported.
func (c *Client) MessageReports(ctx context.Context, messageID string) (*Response, error) {
	var params []queryParam
	if messageID != "" {
		params = append(params, queryParam{key: "message_id", value: messageID})
	}
	return c.transport.get(ctx, "message reports", EndpointMessageReports, params...)
}
