package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/onurcolak/termii-gateway/internal/service"
	"github.com/onurcolak/termii-gateway/pkg/response"
	"github.com/onurcolak/termii-gateway/pkg/termii"
	"github.com/onurcolak/termii-gateway/pkg/validator"
)

// TermiiHandler exposes the Termii operations. Upstream replies are relayed
// with their original status and body.
type TermiiHandler struct {
	service *service.GatewayService
}

func NewTermiiHandler(service *service.GatewayService) *TermiiHandler {
	return &TermiiHandler{service: service}
}

type NumberStatusQuery struct {
	PhoneNumber string `query:"phone_number" json:"phone_number" validate:"required,msisdn"`
	CountryCode string `query:"country_code" json:"country_code" validate:"required"`
}

type NumberSearchQuery struct {
	PhoneNumber string `query:"phone_number" json:"phone_number" validate:"required,msisdn"`
}

type VerifyTokenRequest struct {
	PinID string `json:"pin_id" validate:"required"`
	Pin   string `json:"pin" validate:"required"`
}

// bindAndValidate binds the request into req and validates it. It returns
// false after writing the error response.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, response.BadRequest(c, err)
	}

	if err := c.Validate(req); err != nil {
		return false, validator.HandleValidationError(c, err)
	}

	return true, nil
}

func relay(c echo.Context, resp *termii.Response, err error) error {
	if err != nil {
		return response.BadGateway(c, err)
	}
	return response.Upstream(c, resp)
}

// GetBalance godoc
// @Summary Get wallet balance
// @Tags insights
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Success 200 {object} map[string]any "Termii reply"
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/balance [get]
func (h *TermiiHandler) GetBalance(c echo.Context) error {
	resp, err := h.service.GetBalance(c.Request().Context())
	return relay(c, resp, err)
}

// CheckNumberStatus godoc
// @Summary Check whether a number is fake or ported
// @Tags insights
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Param phone_number query string true "Phone number in international format"
// @Param country_code query string true "ISO 3166 alpha-2 country code"
// @Success 200 {object} map[string]any "Termii reply"
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/numbers/status [get]
func (h *TermiiHandler) CheckNumberStatus(c echo.Context) error {
	var req NumberStatusQuery
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	resp, err := h.service.CheckNumberStatus(c.Request().Context(), req.PhoneNumber, req.CountryCode)
	return relay(c, resp, err)
}

// SearchNumber godoc
// @Summary Look up the network and DND status of a number
// @Tags insights
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Param phone_number query string true "Phone number in international format"
// @Success 200 {object} map[string]any "Termii reply"
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/numbers/search [get]
func (h *TermiiHandler) SearchNumber(c echo.Context) error {
	var req NumberSearchQuery
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	resp, err := h.service.SearchNumber(c.Request().Context(), req.PhoneNumber)
	return relay(c, resp, err)
}

// MessageReports godoc
// @Summary Get delivery reports
// @Tags insights
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Param message_id query string false "Report a single message"
// @Success 200 {object} map[string]any "Termii reply"
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/reports [get]
func (h *TermiiHandler) MessageReports(c echo.Context) error {
	resp, err := h.service.MessageReports(c.Request().Context(), c.QueryParam("message_id"))
	return relay(c, resp, err)
}

// SendMessage godoc
// @Summary Send a message
// @Description "to" may be a single number or a list of numbers
// @Tags messaging
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Param message body termii.Message true "Message to send"
// @Success 200 {object} map[string]any "Termii reply"
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/messages [post]
func (h *TermiiHandler) SendMessage(c echo.Context) error {
	var req termii.Message
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	resp, err := h.service.SendMessage(c.Request().Context(), req)
	return relay(c, resp, err)
}

// SendBulkMessage godoc
// @Summary Send a message to many recipients
// @Tags messaging
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Param message body termii.BulkMessage true "Message to send"
// @Success 200 {object} map[string]any "Termii reply"
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/messages/bulk [post]
func (h *TermiiHandler) SendBulkMessage(c echo.Context) error {
	var req termii.BulkMessage
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	resp, err := h.service.SendBulkMessage(c.Request().Context(), req)
	return relay(c, resp, err)
}

// FetchSenderIDs godoc
// @Summary List sender IDs
// @Tags sender-ids
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Success 200 {object} map[string]any "Termii reply"
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/sender-ids [get]
func (h *TermiiHandler) FetchSenderIDs(c echo.Context) error {
	resp, err := h.service.FetchSenderIDs(c.Request().Context())
	return relay(c, resp, err)
}

// RequestSenderID godoc
// @Summary Request a new sender ID
// @Tags sender-ids
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Param request body termii.SenderIDRequest true "Sender ID request"
// @Success 200 {object} map[string]any "Termii reply"
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/sender-ids [post]
func (h *TermiiHandler) RequestSenderID(c echo.Context) error {
	var req termii.SenderIDRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	resp, err := h.service.RequestSenderID(c.Request().Context(), req)
	return relay(c, resp, err)
}

// FetchPhoneBooks godoc
// @Summary List phonebooks
// @Tags phonebooks
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Success 200 {object} map[string]any "Termii reply"
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/phonebooks [get]
func (h *TermiiHandler) FetchPhoneBooks(c echo.Context) error {
	resp, err := h.service.FetchPhoneBooks(c.Request().Context())
	return relay(c, resp, err)
}

// CreatePhoneBook godoc
// @Summary Create a phonebook
// @Tags phonebooks
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Param phonebook body termii.PhoneBookCreateInput true "Phonebook"
// @Success 200 {object} map[string]any "Termii reply"
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/phonebooks [post]
func (h *TermiiHandler) CreatePhoneBook(c echo.Context) error {
	var req termii.PhoneBookCreateInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	resp, err := h.service.CreatePhoneBook(c.Request().Context(), req)
	return relay(c, resp, err)
}

// FetchContacts godoc
// @Summary List the contacts of a phonebook
// @Tags phonebooks
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Param id path string true "Phonebook ID"
// @Success 200 {object} map[string]any "Termii reply"
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/phonebooks/{id}/contacts [get]
func (h *TermiiHandler) FetchContacts(c echo.Context) error {
	resp, err := h.service.FetchContacts(c.Request().Context(), c.Param("id"))
	return relay(c, resp, err)
}

// AddContact godoc
// @Summary Add a contact to a phonebook
// @Tags phonebooks
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Param id path string true "Phonebook ID"
// @Param contact body termii.ContactCreateInput true "Contact"
// @Success 200 {object} map[string]any "Termii reply"
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/phonebooks/{id}/contacts [post]
func (h *TermiiHandler) AddContact(c echo.Context) error {
	var req termii.ContactCreateInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	resp, err := h.service.AddContact(c.Request().Context(), c.Param("id"), req)
	return relay(c, resp, err)
}

// FetchCampaigns godoc
// @Summary List campaigns
// @Tags campaigns
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Success 200 {object} map[string]any "Termii reply"
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/campaigns [get]
func (h *TermiiHandler) FetchCampaigns(c echo.Context) error {
	resp, err := h.service.FetchCampaigns(c.Request().Context())
	return relay(c, resp, err)
}

// SendToken godoc
// @Summary Send an OTP through any channel
// @Tags tokens
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Param token body termii.SendTokenInput true "Token settings"
// @Success 200 {object} map[string]any "Termii reply"
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/tokens/send [post]
func (h *TermiiHandler) SendToken(c echo.Context) error {
	var req termii.SendTokenInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	resp, err := h.service.SendToken(c.Request().Context(), req)
	return relay(c, resp, err)
}

// VoiceToken godoc
// @Summary Send an OTP in a voice call
// @Tags tokens
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Param token body termii.VoiceTokenInput true "Token settings"
// @Success 200 {object} map[string]any "Termii reply"
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/tokens/voice [post]
func (h *TermiiHandler) VoiceToken(c echo.Context) error {
	var req termii.VoiceTokenInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	resp, err := h.service.VoiceToken(c.Request().Context(), req)
	return relay(c, resp, err)
}

// VoiceCall godoc
// @Summary Read a caller supplied code in a voice call
// @Tags tokens
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Param call body termii.VoiceCallInput true "Call"
// @Success 200 {object} map[string]any "Termii reply"
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/tokens/voice-call [post]
func (h *TermiiHandler) VoiceCall(c echo.Context) error {
	var req termii.VoiceCallInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	resp, err := h.service.VoiceCall(c.Request().Context(), req)
	return relay(c, resp, err)
}

// EmailToken godoc
// @Summary Email a caller supplied code
// @Tags tokens
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Param token body termii.EmailTokenInput true "Email token"
// @Success 200 {object} map[string]any "Termii reply"
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/tokens/email [post]
func (h *TermiiHandler) EmailToken(c echo.Context) error {
	var req termii.EmailTokenInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	resp, err := h.service.EmailToken(c.Request().Context(), req)
	return relay(c, resp, err)
}

// InAppToken godoc
// @Summary Generate an OTP without delivering it
// @Tags tokens
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Param token body termii.InAppTokenInput true "Token settings"
// @Success 200 {object} map[string]any "Termii reply"
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/tokens/in-app [post]
func (h *TermiiHandler) InAppToken(c echo.Context) error {
	var req termii.InAppTokenInput
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	resp, err := h.service.InAppToken(c.Request().Context(), req)
	return relay(c, resp, err)
}

// VerifyToken godoc
// @Summary Verify an OTP
// @Description The reply says whether the pin is verified or expired
// @Tags tokens
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Gateway API key"
// @Param verification body VerifyTokenRequest true "Pin ID and pin"
// @Success 200 {object} map[string]any "Termii reply"
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/v1/tokens/verify [post]
func (h *TermiiHandler) VerifyToken(c echo.Context) error {
	var req VerifyTokenRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	resp, err := h.service.VerifyToken(c.Request().Context(), req.PinID, req.Pin)
	return relay(c, resp, err)
}
