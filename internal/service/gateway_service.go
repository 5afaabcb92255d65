package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/onurcolak/termii-gateway/internal/domain"
	"github.com/onurcolak/termii-gateway/pkg/logger"
	"github.com/onurcolak/termii-gateway/pkg/termii"
)

// Operation names recorded in the dispatch log.
const (
	OpGetBalance        = "get_balance"
	OpCheckNumberStatus = "check_number_status"
	OpSearchNumber      = "search_number"
	OpMessageReports    = "message_reports"
	OpSendMessage       = "send_message"
	OpSendBulkMessage   = "send_bulk_message"
	OpFetchSenderIDs    = "fetch_sender_ids"
	OpRequestSenderID   = "request_sender_id"
	OpFetchPhoneBooks   = "fetch_phonebooks"
	OpCreatePhoneBook   = "create_phonebook"
	OpFetchContacts     = "fetch_contacts"
	OpAddContact        = "add_contact"
	OpFetchCampaigns    = "fetch_campaigns"
	OpSendToken         = "send_token"
	OpVoiceToken        = "voice_token"
	OpVoiceCall         = "voice_call"
	OpEmailToken        = "email_token"
	OpInAppToken        = "in_app_token"
	OpVerifyToken       = "verify_token"
)

var (
	ErrDispatchLogDisabled = errors.New("dispatch log not configured")
	ErrSnapshotsDisabled   = errors.New("balance snapshot store not configured")
)

// Small internal interfaces so we can test without touching real DB/Redis.
type dispatchRepository interface {
	Create(ctx context.Context, d *domain.Dispatch) error
	GetAll(ctx context.Context, operation *string, page, pageSize int) ([]domain.Dispatch, int64, error)
	GetStats(ctx context.Context) (domain.DispatchStats, error)
}

type snapshotStore interface {
	SaveBalanceSnapshot(ctx context.Context, snapshot domain.BalanceSnapshot) error
	GetBalanceSnapshot(ctx context.Context) (*domain.BalanceSnapshot, error)
}

// GatewayService forwards calls to Termii and records each one in the
// dispatch log. repo and snapshots may be nil.
type GatewayService struct {
	client    *termii.Client
	repo      dispatchRepository
	snapshots snapshotStore
}

func NewGatewayService(client *termii.Client, repo dispatchRepository, snapshots snapshotStore) *GatewayService {
	return &GatewayService{
		client:    client,
		repo:      repo,
		snapshots: snapshots,
	}
}

// record runs call and writes its outcome to the dispatch log. A failure to
// write the log is logged and never replaces the outcome of call.
func (s *GatewayService) record(
	ctx context.Context,
	operation string,
	call func(ctx context.Context) (*termii.Response, error),
) (*termii.Response, error) {
	startTime := time.Now()
	resp, err := call(ctx)
	duration := time.Since(startTime)

	if err != nil {
		logger.Errorf("Termii %s failed after %v: %v", operation, duration, err)
	} else if !resp.IsSuccess() {
		logger.Warnf("Termii %s returned status %d in %v", operation, resp.StatusCode, duration)
	}

	if s.repo == nil {
		return resp, err
	}

	dispatch := &domain.Dispatch{
		ID:         uuid.NewString(),
		Operation:  operation,
		DurationMs: duration.Milliseconds(),
		CreatedAt:  startTime.UTC(),
	}
	if err != nil {
		msg := err.Error()
		dispatch.Error = &msg
	} else {
		dispatch.StatusCode = resp.StatusCode
	}

	// The caller's context may already be done; the log entry should still land.
	logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	if logErr := s.repo.Create(logCtx, dispatch); logErr != nil {
		logger.Warnf("Failed to record dispatch %s (%s): %v", dispatch.ID, operation, logErr)
	}

	return resp, err
}

func (s *GatewayService) GetBalance(ctx context.Context) (*termii.Response, error) {
	return s.record(ctx, OpGetBalance, s.client.GetBalance)
}

func (s *GatewayService) CheckNumberStatus(ctx context.Context, phoneNumber, countryCode string) (*termii.Response, error) {
	return s.record(ctx, OpCheckNumberStatus, func(ctx context.Context) (*termii.Response, error) {
		return s.client.CheckNumberStatus(ctx, phoneNumber, countryCode)
	})
}

func (s *GatewayService) SearchNumber(ctx context.Context, phoneNumber string) (*termii.Response, error) {
	return s.record(ctx, OpSearchNumber, func(ctx context.Context) (*termii.Response, error) {
		return s.client.SearchNumber(ctx, phoneNumber)
	})
}

func (s *GatewayService) MessageReports(ctx context.Context, messageID string) (*termii.Response, error) {
	return s.record(ctx, OpMessageReports, func(ctx context.Context) (*termii.Response, error) {
		return s.client.MessageReports(ctx, messageID)
	})
}

func (s *GatewayService) SendMessage(ctx context.Context, payload termii.Message) (*termii.Response, error) {
	return s.record(ctx, OpSendMessage, func(ctx context.Context) (*termii.Response, error) {
		return s.client.Messaging.Send(ctx, payload)
	})
}

func (s *GatewayService) SendBulkMessage(ctx context.Context, payload termii.BulkMessage) (*termii.Response, error) {
	return s.record(ctx, OpSendBulkMessage, func(ctx context.Context) (*termii.Response, error) {
		return s.client.Messaging.SendBulk(ctx, payload)
	})
}

func (s *GatewayService) FetchSenderIDs(ctx context.Context) (*termii.Response, error) {
	return s.record(ctx, OpFetchSenderIDs, s.client.SenderID.Fetch)
}

func (s *GatewayService) RequestSenderID(ctx context.Context, payload termii.SenderIDRequest) (*termii.Response, error) {
	return s.record(ctx, OpRequestSenderID, func(ctx context.Context) (*termii.Response, error) {
		return s.client.SenderID.Request(ctx, payload)
	})
}

func (s *GatewayService) FetchPhoneBooks(ctx context.Context) (*termii.Response, error) {
	return s.record(ctx, OpFetchPhoneBooks, s.client.PhoneBooks.Fetch)
}

func (s *GatewayService) CreatePhoneBook(ctx context.Context, payload termii.PhoneBookCreateInput) (*termii.Response, error) {
	return s.record(ctx, OpCreatePhoneBook, func(ctx context.Context) (*termii.Response, error) {
		return s.client.PhoneBooks.Create(ctx, payload)
	})
}

func (s *GatewayService) FetchContacts(ctx context.Context, phoneBookID string) (*termii.Response, error) {
	return s.record(ctx, OpFetchContacts, func(ctx context.Context) (*termii.Response, error) {
		return s.client.PhoneBooks.Contacts(ctx, phoneBookID)
	})
}

func (s *GatewayService) AddContact(ctx context.Context, phoneBookID string, payload termii.ContactCreateInput) (*termii.Response, error) {
	return s.record(ctx, OpAddContact, func(ctx context.Context) (*termii.Response, error) {
		return s.client.PhoneBooks.AddContact(ctx, phoneBookID, payload)
	})
}

func (s *GatewayService) FetchCampaigns(ctx context.Context) (*termii.Response, error) {
	return s.record(ctx, OpFetchCampaigns, s.client.Campaign.Fetch)
}

func (s *GatewayService) SendToken(ctx context.Context, payload termii.SendTokenInput) (*termii.Response, error) {
	return s.record(ctx, OpSendToken, func(ctx context.Context) (*termii.Response, error) {
		return s.client.Token.Send(ctx, payload)
	})
}

func (s *GatewayService) VoiceToken(ctx context.Context, payload termii.VoiceTokenInput) (*termii.Response, error) {
	return s.record(ctx, OpVoiceToken, func(ctx context.Context) (*termii.Response, error) {
		return s.client.Token.Voice(ctx, payload)
	})
}

func (s *GatewayService) VoiceCall(ctx context.Context, payload termii.VoiceCallInput) (*termii.Response, error) {
	return s.record(ctx, OpVoiceCall, func(ctx context.Context) (*termii.Response, error) {
		return s.client.Token.VoiceCall(ctx, payload)
	})
}

func (s *GatewayService) EmailToken(ctx context.Context, payload termii.EmailTokenInput) (*termii.Response, error) {
	return s.record(ctx, OpEmailToken, func(ctx context.Context) (*termii.Response, error) {
		return s.client.Token.Email(ctx, payload)
	})
}

func (s *GatewayService) InAppToken(ctx context.Context, payload termii.InAppTokenInput) (*termii.Response, error) {
	return s.record(ctx, OpInAppToken, func(ctx context.Context) (*termii.Response, error) {
		return s.client.Token.InApp(ctx, payload)
	})
}

func (s *GatewayService) VerifyToken(ctx context.Context, pinID, pin string) (*termii.Response, error) {
	return s.record(ctx, OpVerifyToken, func(ctx context.Context) (*termii.Response, error) {
		return s.client.Token.Verify(ctx, pinID, pin)
	})
}

// CheckBalance fetches the balance and keeps it as the latest snapshot.
// Unlike the proxy methods it treats a non-2xx reply as an error.
func (s *GatewayService) CheckBalance(ctx context.Context) (*domain.BalanceSnapshot, error) {
	resp, err := s.GetBalance(ctx)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("balance request returned status %d, body: %s", resp.StatusCode, resp.String())
	}

	var body struct {
		User     string  `json:"user"`
		Balance  float64 `json:"balance"`
		Currency string  `json:"currency"`
	}
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}

	snapshot := &domain.BalanceSnapshot{
		User:      body.User,
		Balance:   body.Balance,
		Currency:  body.Currency,
		CheckedAt: time.Now().UTC(),
	}

	if s.snapshots != nil {
		if err := s.snapshots.SaveBalanceSnapshot(ctx, *snapshot); err != nil {
			logger.Warnf("Failed to store balance snapshot: %v", err)
		}
	}

	return snapshot, nil
}

func (s *GatewayService) LatestBalanceSnapshot(ctx context.Context) (*domain.BalanceSnapshot, error) {
	if s.snapshots == nil {
		return nil, ErrSnapshotsDisabled
	}
	return s.snapshots.GetBalanceSnapshot(ctx)
}

func (s *GatewayService) ListDispatches(
	ctx context.Context,
	operation *string,
	page, pageSize int,
) ([]domain.Dispatch, int64, error) {
	if s.repo == nil {
		return nil, 0, ErrDispatchLogDisabled
	}
	return s.repo.GetAll(ctx, operation, page, pageSize)
}

func (s *GatewayService) DispatchStats(ctx context.Context) (domain.DispatchStats, error) {
	if s.repo == nil {
		return domain.DispatchStats{}, ErrDispatchLogDisabled
	}
	return s.repo.GetStats(ctx)
}
