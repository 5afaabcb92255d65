package termii

import "context"

// PhoneBooks manages phonebooks and the contacts inside them.
type PhoneBooks struct {
	transport *transport
}

// Fetch returns the phonebooks available on the integration.
func (p *PhoneBooks) Fetch(ctx context.Context) (*Response, error) {
	return p.transport.get(ctx, "fetch phonebooks", EndpointFetchPhoneBooks)
}

func (p *PhoneBooks) Create(ctx context.Context, payload PhoneBookCreateInput) (*Response, error) {
	return p.transport.post(ctx, "create phonebook", EndpointPhoneBooksBase, payload)
}

// Contacts returns the contacts of a phonebook. The ID is not checked
// locally; an unknown ID is reported by the API.
func (p *PhoneBooks) Contacts(ctx context.Context, phoneBookID string) (*Response, error) {
	return p.transport.get(ctx, "fetch contacts", phoneBookContactsPath(phoneBookID))
}

// AddContact adds a single contact to a phonebook.
func (p *PhoneBooks) AddContact(ctx context.Context, phoneBookID string, payload ContactCreateInput) (*Response, error) {
	return p.transport.post(ctx, "add contact", phoneBookContactsPath(phoneBookID), payload)
}
