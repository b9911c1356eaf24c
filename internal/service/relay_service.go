package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/khanonymous/relay-backend/internal/common"
	"github.com/khanonymous/relay-backend/internal/repository"
	"github.com/khanonymous/relay-backend/pkg/cache"
	"github.com/khanonymous/relay-backend/pkg/i18n"
	"github.com/khanonymous/relay-backend/pkg/logger"
	"gorm.io/gorm"
)

// RelayService forwards messages between users who only know each other
// through an anonymous link, and keeps the correlation/moderation state
// that makes replies, blocks and reports resolvable.
type RelayService interface {
	// HandleMessage relays a first-contact message from sender to receiver.
	// senderMessageID is the sender-side copy id, recorded opportunistically.
	HandleMessage(ctx context.Context, fromUser, toUser int64, content string, senderMessageID *int64) (int64, error)

	// HandleReply relays a reply to a previously forwarded copy back to its
	// original sender.
	HandleReply(ctx context.Context, fromUser, receiverMessageID int64, content string, senderMessageID *int64) (int64, error)

	// HandleBlock records a directed block from actor against target.
	HandleBlock(ctx context.Context, actor, target int64) error

	// HandleBlockByMessage resolves the sender behind a forwarded copy and
	// blocks them on behalf of the copy's receiver.
	HandleBlockByMessage(ctx context.Context, actor, receiverMessageID int64) error

	// HandleReport files an abuse report against the sender behind a
	// forwarded copy, with a content snapshot supplied by the gateway.
	HandleReport(ctx context.Context, actor, receiverMessageID int64, messageText string) (int64, error)

	// HandleLinkClick records that a visitor opened a user's anonymous link.
	HandleLinkClick(ctx context.Context, receiverID, visitorID int64) (int64, error)
}

type relayService struct {
	users           repository.UserRepository
	blocks          repository.BlockRepository
	correlations    repository.CorrelationRepository
	reports         repository.ReportRepository
	clicks          repository.ClickRepository
	gateway         Gateway
	bundle          *i18n.Bundle
	cacheService    cache.Service
	defaultLanguage string
}

// NewRelayService creates a new RelayService
func NewRelayService(
	users repository.UserRepository,
	blocks repository.BlockRepository,
	correlations repository.CorrelationRepository,
	reports repository.ReportRepository,
	clicks repository.ClickRepository,
	gateway Gateway,
	bundle *i18n.Bundle,
	cacheService cache.Service,
	defaultLanguage string,
) RelayService {
	return &relayService{
		users:           users,
		blocks:          blocks,
		correlations:    correlations,
		reports:         reports,
		clicks:          clicks,
		gateway:         gateway,
		bundle:          bundle,
		cacheService:    cacheService,
		defaultLanguage: defaultLanguage,
	}
}

// HandleMessage relays one message. The block check runs in the
// receiver→sender direction: a user blocks incoming senders. Correlation
// state is written only after the transport confirms delivery, so it never
// references a message that does not exist on the receiver's side.
func (s *relayService) HandleMessage(ctx context.Context, fromUser, toUser int64, content string, senderMessageID *int64) (int64, error) {
	if err := s.users.Ensure(fromUser, s.defaultLanguage); err != nil {
		return 0, common.Persistence(err)
	}
	if err := s.users.Ensure(toUser, s.defaultLanguage); err != nil {
		return 0, common.Persistence(err)
	}

	banned, err := s.users.IsBanned(fromUser)
	if err != nil {
		return 0, common.Persistence(err)
	}
	if banned {
		return 0, common.ErrBanned
	}

	blocked, err := s.blocks.Exists(toUser, fromUser)
	if err != nil {
		return 0, common.Persistence(err)
	}
	if blocked {
		// Refused delivery surfaces to the sender only; the receiver is
		// never told a blocked attempt happened.
		return 0, common.ErrBlocked
	}

	receiverMessageID, err := s.gateway.Deliver(ctx, toUser, content)
	if err != nil {
		return 0, fmt.Errorf("deliver to %d: %w", toUser, err)
	}

	corrID, err := s.correlations.Create(fromUser, toUser, receiverMessageID, senderMessageID)
	if err != nil {
		return 0, common.Persistence(err)
	}

	s.invalidateProfile(ctx, toUser)
	return corrID, nil
}

// HandleReply maps a reply on a forwarded copy back to the copy's original
// sender and relays it. Each relayed leg records its own correlation, so
// conversations can alternate indefinitely.
func (s *relayService) HandleReply(ctx context.Context, fromUser, receiverMessageID int64, content string, senderMessageID *int64) (int64, error) {
	corr, err := s.findCorrelation(receiverMessageID)
	if err != nil {
		return 0, err
	}
	if corr.ReceiverID != fromUser {
		// Only the user the copy was delivered to can reply through it.
		return 0, common.ErrNotFound
	}

	banned, err := s.users.IsBanned(fromUser)
	if err != nil {
		return 0, common.Persistence(err)
	}
	if banned {
		return 0, common.ErrBanned
	}

	target := corr.SenderID
	blocked, err := s.blocks.Exists(target, fromUser)
	if err != nil {
		return 0, common.Persistence(err)
	}
	if blocked {
		return 0, common.ErrBlocked
	}

	newReceiverMessageID, err := s.gateway.Deliver(ctx, target, content)
	if err != nil {
		return 0, fmt.Errorf("deliver reply to %d: %w", target, err)
	}

	corrID, err := s.correlations.Create(fromUser, target, newReceiverMessageID, senderMessageID)
	if err != nil {
		return 0, common.Persistence(err)
	}

	s.invalidateProfile(ctx, target)
	return corrID, nil
}

// HandleBlock records the directed edge. A repeated block is absorbed as a
// no-op. The blocked party is never notified.
func (s *relayService) HandleBlock(ctx context.Context, actor, target int64) error {
	if err := s.users.Ensure(actor, s.defaultLanguage); err != nil {
		return common.Persistence(err)
	}
	if err := s.blocks.Create(actor, target); err != nil {
		return common.Persistence(err)
	}

	s.notify(ctx, actor, "relay.block_confirmed")
	return nil
}

// HandleBlockByMessage resolves the copy's sender first, then blocks
func (s *relayService) HandleBlockByMessage(ctx context.Context, actor, receiverMessageID int64) error {
	corr, err := s.findCorrelation(receiverMessageID)
	if err != nil {
		return err
	}
	if corr.ReceiverID != actor {
		return common.ErrNotFound
	}
	return s.HandleBlock(ctx, actor, corr.SenderID)
}

// HandleReport files a report against the sender behind the forwarded copy.
// messageText is a point-in-time snapshot supplied by the gateway; the
// report log itself performs no lookups.
func (s *relayService) HandleReport(ctx context.Context, actor, receiverMessageID int64, messageText string) (int64, error) {
	corr, err := s.findCorrelation(receiverMessageID)
	if err != nil {
		return 0, err
	}
	if corr.ReceiverID != actor {
		return 0, common.ErrNotFound
	}

	reportID, err := s.reports.Create(actor, corr.SenderID, messageText)
	if err != nil {
		return 0, common.Persistence(err)
	}

	s.notify(ctx, actor, "relay.report_confirmed")
	return reportID, nil
}

// HandleLinkClick ensures both users exist, then appends the click.
// Self-clicks are recorded as-is; filtering them is the caller's policy.
func (s *relayService) HandleLinkClick(ctx context.Context, receiverID, visitorID int64) (int64, error) {
	if err := s.users.Ensure(receiverID, s.defaultLanguage); err != nil {
		return 0, common.Persistence(err)
	}
	if err := s.users.Ensure(visitorID, s.defaultLanguage); err != nil {
		return 0, common.Persistence(err)
	}

	clickID, err := s.clicks.Create(receiverID, visitorID)
	if err != nil {
		return 0, common.Persistence(err)
	}

	s.invalidateProfile(ctx, receiverID)
	return clickID, nil
}

func (s *relayService) findCorrelation(receiverMessageID int64) (*correlationRef, error) {
	corr, err := s.correlations.FindByReceiverMessageID(receiverMessageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.Persistence(err)
	}
	return &correlationRef{SenderID: corr.SenderID, ReceiverID: corr.ReceiverID}, nil
}

// correlationRef is the resolved pair behind a forwarded copy
type correlationRef struct {
	SenderID   int64
	ReceiverID int64
}

// notify sends a localized confirmation; failures are logged, not fatal
func (s *relayService) notify(ctx context.Context, user int64, key string) {
	lang := s.defaultLanguage
	if u, err := s.users.FindByID(user); err == nil && u.Language != "" {
		lang = u.Language
	}

	text := s.bundle.T(i18n.FromCode(lang), key)
	if err := s.gateway.Notify(ctx, user, text); err != nil {
		logger.GetLogger().Warn().
			Int64("user_id", user).
			Str("key", key).
			Err(err).
			Msg("notify failed")
	}
}

func (s *relayService) invalidateProfile(ctx context.Context, user int64) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.InvalidateProfile(ctx, user); err != nil {
		logger.GetLogger().Warn().Int64("user_id", user).Err(err).Msg("cache invalidate failed")
	}
}
