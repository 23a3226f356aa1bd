package accounting

import "errors"

// Sentinel errors for the ledger integration. Infrastructure wraps the
// underlying cause with %w so callers can match with errors.Is.
var (
	ErrStateMismatch       = errors.New("accounting: authorization state mismatch")
	ErrExchangeFailed      = errors.New("accounting: authorization code exchange failed")
	ErrRefreshFailed       = errors.New("accounting: token refresh failed")
	ErrMetadataFetchFailed = errors.New("accounting: company metadata fetch failed")
	ErrProviderTimeout     = errors.New("accounting: ledger provider timed out")
	ErrProviderUnavailable = errors.New("accounting: ledger provider unavailable")
	ErrNoActiveConnection  = errors.New("accounting: no active ledger connection")

	// Persistence outcomes of a completed handshake. The callback
	// handler maps these to distinct redirect error codes.
	ErrConnectionCreateFailed = errors.New("accounting: storing new ledger connection failed")
	ErrConnectionUpdateFailed = errors.New("accounting: updating ledger connection failed")
)
