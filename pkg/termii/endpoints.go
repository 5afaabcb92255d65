package termii

import "net/url"

// Wire paths of the Termii API. Paths used with GET end with "?" so the
// encoded query can be appended directly.
const (
	// Messaging
	EndpointSendMessage     = "/api/sms/send"
	EndpointSendBulkMessage = "/api/sms/send/bulk"

	// Insights
	EndpointGetBalance        = "/api/get-balance?"
	EndpointCheckNumberStatus = "/api/insight/number/query?"
	EndpointSearchNumber      = "/api/check/dnd?"
	EndpointMessageReports    = "/api/sms/inbox?"

	// Sender ID
	EndpointFetchSenderIDs  = "/api/sender-id?"
	EndpointRequestSenderID = "/api/sender-id/request"

	// Campaign
	EndpointFetchPhoneBooks = "/api/phonebooks?"
	EndpointPhoneBooksBase  = "/api/phonebooks"
	EndpointFetchCampaigns  = "/api/sms/campaigns?"

	// Token
	EndpointSendToken   = "/api/sms/otp/send"
	EndpointVoiceToken  = "/api/sms/otp/send/voice"
	EndpointVoiceCall   = "/api/sms/otp/call"
	EndpointEmailToken  = "/api/email/otp/send"
	EndpointVerifyToken = "/api/sms/otp/verify"
	EndpointInAppToken  = "/api/sms/otp/generate"
)

// phoneBookContactsPath returns the contacts path of a single phonebook.
func phoneBookContactsPath(phoneBookID string) string {
	return EndpointPhoneBooksBase + "/" + url.PathEscape(phoneBookID) + "/contacts?"
}
