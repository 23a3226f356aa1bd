package accounting

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/accounting"
)

// RefreshThreshold is how close to expiry a token must be before the
// sweep refreshes it
const RefreshThreshold = 30 * time.Minute

// RefreshOutcome classifies the result for one connection in a sweep
type RefreshOutcome string

const (
	OutcomeSuccess RefreshOutcome = "success"
	OutcomeSkipped RefreshOutcome = "skipped"
	OutcomeError   RefreshOutcome = "error"
)

// ConnectionOutcome is the per-connection line of a sweep report
type ConnectionOutcome struct {
	RealmID     string         `json:"realm_id"`
	CompanyName string         `json:"company_name"`
	Outcome     RefreshOutcome `json:"outcome"`
	Message     string         `json:"message,omitempty"`
}

// SweepReport summarizes one refresh sweep
type SweepReport struct {
	Total       int                 `json:"total"`
	Refreshed   int                 `json:"refreshed"`
	Skipped     int                 `json:"skipped"`
	Failed      int                 `json:"failed"`
	Connections []ConnectionOutcome `json:"connections"`
}

// TokenRefreshService keeps stored access tokens ahead of expiry
type TokenRefreshService struct {
	provider accounting.LedgerProvider
	conns    accounting.ConnectionRepository
	logger   *zap.Logger
}

// NewTokenRefreshService creates a token refresh service
func NewTokenRefreshService(provider accounting.LedgerProvider, conns accounting.ConnectionRepository, logger *zap.Logger) *TokenRefreshService {
	return &TokenRefreshService{provider: provider, conns: conns, logger: logger}
}

// RefreshAll sweeps every active connection. A failure on one connection
// is recorded on that connection and in the report; it never stops the
// sweep or propagates to the caller.
func (s *TokenRefreshService) RefreshAll(ctx context.Context) (*SweepReport, error) {
	conns, err := s.conns.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	report := &SweepReport{
		Total:       len(conns),
		Connections: make([]ConnectionOutcome, 0, len(conns)),
	}

	for i := range conns {
		conn := &conns[i]
		outcome := ConnectionOutcome{RealmID: conn.RealmID, CompanyName: conn.CompanyName}

		if !conn.NeedsRefresh(RefreshThreshold) {
			outcome.Outcome = OutcomeSkipped
			report.Skipped++
			report.Connections = append(report.Connections, outcome)
			continue
		}

		if err := s.refresh(ctx, conn); err != nil {
			s.logger.Warn("token refresh failed",
				zap.String("realm_id", conn.RealmID),
				zap.Error(err))
			outcome.Outcome = OutcomeError
			outcome.Message = err.Error()
			report.Failed++
		} else {
			outcome.Outcome = OutcomeSuccess
			report.Refreshed++
		}
		report.Connections = append(report.Connections, outcome)
	}

	s.logger.Info("token refresh sweep finished",
		zap.Int("total", report.Total),
		zap.Int("refreshed", report.Refreshed),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed))
	return report, nil
}

// EnsureFreshToken refreshes the connection's tokens in place when they
// are inside the expiry window
func (s *TokenRefreshService) EnsureFreshToken(ctx context.Context, conn *accounting.Connection) error {
	if !conn.NeedsRefresh(RefreshThreshold) {
		return nil
	}
	return s.refresh(ctx, conn)
}

func (s *TokenRefreshService) refresh(ctx context.Context, conn *accounting.Connection) error {
	tokens, err := s.provider.RefreshTokens(ctx, conn.RefreshToken)
	if err != nil {
		conn.RecordError(err.Error())
		if saveErr := s.conns.Save(ctx, conn); saveErr != nil {
			s.logger.Error("failed to record refresh error",
				zap.String("realm_id", conn.RealmID),
				zap.Error(saveErr))
		}
		return err
	}

	conn.ApplyTokens(*tokens)
	if err := s.conns.Save(ctx, conn); err != nil {
		return err
	}
	return nil
}
