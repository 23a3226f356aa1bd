package accounting

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/accounting"
	"github.com/wms/backend/internal/domain/shared"
)

// stateTTL bounds how long an issued authorization state stays valid
const stateTTL = 10 * time.Minute

// OAuthService runs the authorization handshake with the ledger provider
type OAuthService struct {
	provider accounting.LedgerProvider
	states   accounting.StateStore
	conns    accounting.ConnectionRepository
	logger   *zap.Logger
}

// NewOAuthService creates an OAuth handshake service
func NewOAuthService(provider accounting.LedgerProvider, states accounting.StateStore, conns accounting.ConnectionRepository, logger *zap.Logger) *OAuthService {
	return &OAuthService{provider: provider, states: states, conns: conns, logger: logger}
}

// Authorization is the outcome of BeginAuthorization. State is returned
// alongside the URL so the HTTP layer can mirror it into a cookie.
type Authorization struct {
	URL   string
	State string
}

// BeginAuthorization issues a fresh single-use state and builds the
// provider's consent URL
func (s *OAuthService) BeginAuthorization(ctx context.Context) (*Authorization, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate authorization state: %w", err)
	}
	state := hex.EncodeToString(buf)

	if err := s.states.Save(ctx, state, stateTTL); err != nil {
		return nil, fmt.Errorf("save authorization state: %w", err)
	}

	return &Authorization{
		URL:   s.provider.AuthorizationURL(state),
		State: state,
	}, nil
}

// CompleteAuthorization finishes the handshake for a callback. The state
// is validated before any remote call; an unknown or reused state aborts
// with ErrStateMismatch and no connection is written.
func (s *OAuthService) CompleteAuthorization(ctx context.Context, code, state, realmID string) (*accounting.Connection, error) {
	ok, err := s.states.Consume(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("consume authorization state: %w", err)
	}
	if !ok {
		s.logger.Warn("authorization callback with unknown or reused state",
			zap.String("realm_id", realmID))
		return nil, accounting.ErrStateMismatch
	}

	tokens, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", accounting.ErrExchangeFailed, err)
	}

	info, err := s.provider.FetchCompanyInfo(ctx, tokens.AccessToken, realmID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", accounting.ErrMetadataFetchFailed, err)
	}

	// A realm may reconnect after an expired or broken grant, so the
	// handshake either refreshes the existing row or creates a new one.
	conn, lookupErr := s.conns.FindByRealmID(ctx, realmID)
	persistErr := accounting.ErrConnectionUpdateFailed
	switch {
	case lookupErr == nil:
		conn.CompanyName = info.CompanyName
		conn.IsActive = true
		conn.ApplyTokens(*tokens)
	case errors.Is(lookupErr, shared.ErrNotFound):
		conn = accounting.NewConnection(realmID, info.CompanyName, *tokens)
		persistErr = accounting.ErrConnectionCreateFailed
	default:
		return nil, fmt.Errorf("look up ledger connection: %w", lookupErr)
	}

	if err := s.conns.Upsert(ctx, conn); err != nil {
		// The remote grant succeeded but we could not keep it. Leave a
		// trail for manual reconciliation of the orphaned tokens.
		s.logger.Error("failed to persist ledger connection after token grant",
			zap.String("realm_id", realmID),
			zap.String("company", info.CompanyName),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", persistErr, err)
	}

	s.logger.Info("ledger connection established",
		zap.String("realm_id", realmID),
		zap.String("company", info.CompanyName))
	return conn, nil
}

// Connections lists all stored connections
func (s *OAuthService) Connections(ctx context.Context) ([]accounting.Connection, error) {
	return s.conns.FindActive(ctx)
}

// Disconnect removes a stored connection. Tokens are not revoked
// remotely; they simply expire.
func (s *OAuthService) Disconnect(ctx context.Context, id uuid.UUID) error {
	if _, err := s.conns.FindByID(ctx, id); err != nil {
		return err
	}
	return s.conns.Delete(ctx, id)
}
