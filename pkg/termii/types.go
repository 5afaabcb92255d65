package termii

import (
	"bytes"
	"encoding/json"
)

// Channel is the route a message or token is delivered through.
type Channel string

const (
	ChannelGeneric  Channel = "generic"
	ChannelDND      Channel = "dnd"
	ChannelWhatsApp Channel = "whatsapp"
)

// PinType is the alphabet a generated pin is drawn from.
type PinType string

const (
	PinTypeNumeric      PinType = "NUMERIC"
	PinTypeAlphanumeric PinType = "ALPHANUMERIC"
)

// Recipients is the "to" field of a single message send. It is serialized
// exactly as built: To yields a JSON string, ToMany a JSON array.
type Recipients struct {
	numbers []string
	list    bool
}

// To addresses a message to a single phone number.
func To(number string) Recipients {
	return Recipients{numbers: []string{number}}
}

// ToMany addresses a message to a list of phone numbers, even when the list
// holds a single entry.
func ToMany(numbers ...string) Recipients {
	return Recipients{numbers: numbers, list: true}
}

// Numbers returns the addressed phone numbers, or nil when there are none.
func (r Recipients) Numbers() []string {
	if len(r.numbers) == 0 || (!r.list && r.numbers[0] == "") {
		return nil
	}
	return r.numbers
}

// IsList reports whether the recipients serialize as a JSON array.
func (r Recipients) IsList() bool {
	return r.list
}

func (r Recipients) MarshalJSON() ([]byte, error) {
	if r.list {
		if r.numbers == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(r.numbers)
	}
	if len(r.numbers) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(r.numbers[0])
}

func (r *Recipients) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var numbers []string
		if err := json.Unmarshal(data, &numbers); err != nil {
			return err
		}
		*r = ToMany(numbers...)
		return nil
	}

	var number string
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*r = To(number)
	return nil
}

// MessageMedia is an attachment sent over the WhatsApp channel.
type MessageMedia struct {
	URL     string `json:"url" validate:"required,url"`
	Caption string `json:"caption"`
}

// Message is the payload of Messaging.Send.
type Message struct {
	To      Recipients    `json:"to" validate:"required,dive,msisdn"`
	From    string        `json:"from" validate:"required"`
	SMS     string        `json:"sms,omitempty"`
	Type    string        `json:"type" validate:"required"`
	Channel Channel       `json:"channel" validate:"required,oneof=generic dnd whatsapp"`
	Media   *MessageMedia `json:"media,omitempty"`
}

// BulkMessage is the payload of Messaging.SendBulk. To is always sent as a
// JSON array.
type BulkMessage struct {
	To      []string `json:"to" validate:"required,min=1,dive,msisdn"`
	From    string   `json:"from" validate:"required"`
	SMS     string   `json:"sms,omitempty"`
	Type    string   `json:"type" validate:"required"`
	Channel Channel  `json:"channel" validate:"required,oneof=generic dnd whatsapp"`
}

type SenderIDRequest struct {
	SenderID string `json:"sender_id" validate:"required"`
	Usecase  string `json:"usecase" validate:"required"`
	Company  string `json:"company" validate:"required"`
}

type PhoneBookCreateInput struct {
	PhonebookName string `json:"phonebook_name" validate:"required"`
	Description   string `json:"description,omitempty"`
}

type ContactCreateInput struct {
	PhoneNumber  string `json:"phone_number" validate:"required"`
	CountryCode  string `json:"country_code" validate:"required"`
	EmailAddress string `json:"email_address" validate:"required,email"`
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name,omitempty"`
	Company      string `json:"company,omitempty"`
}

// PinConfig controls how a generated pin behaves. PinTimeToLive is in
// minutes.
type PinConfig struct {
	PinAttempts   int `json:"pin_attempts" validate:"required,min=1"`
	PinTimeToLive int `json:"pin_time_to_live" validate:"gte=0"`
	PinLength     int `json:"pin_length" validate:"required,min=1"`
}

type SendTokenInput struct {
	PinConfig
	MessageType    PinType `json:"message_type" validate:"required,oneof=NUMERIC ALPHANUMERIC"`
	To             string  `json:"to" validate:"required,msisdn"`
	From           string  `json:"from" validate:"required"`
	Channel        Channel `json:"channel" validate:"required,oneof=generic dnd whatsapp"`
	PinPlaceholder string  `json:"pin_placeholder" validate:"required"`
	MessageText    string  `json:"message_text" validate:"required"`
}

type VoiceTokenInput struct {
	PinConfig
	PhoneNumber string `json:"phone_number" validate:"required,msisdn"`
}

type VoiceCallInput struct {
	PhoneNumber string `json:"phone_number" validate:"required,msisdn"`
	Code        string `json:"code" validate:"required"`
}

// EmailTokenInput delivers a code the caller generated. EmailConfigurationID
// refers to an email configuration set up on the Termii dashboard.
type EmailTokenInput struct {
	EmailAddress         string `json:"email_address" validate:"required,email"`
	Code                 string `json:"code" validate:"required"`
	EmailConfigurationID string `json:"email_configuration_id" validate:"required"`
}

type InAppTokenInput struct {
	PinConfig
	PinType     PinType `json:"pin_type" validate:"required,oneof=NUMERIC ALPHANUMERIC"`
	PhoneNumber string  `json:"phone_number" validate:"required,msisdn"`
}

type verifyTokenRequest struct {
	PinID string `json:"pin_id"`
	Pin   string `json:"pin"`
}
