package meetauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/meetsdev/meetauth/jwt"
	"github.com/meetsdev/meetauth/password"
	"github.com/meetsdev/meetauth/tokenstore"
)

// Service defines a public type used by meetauth APIs.
//
// Service instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Service struct {
	config       Config
	tokenStore   tokenstore.Store
	userProvider UserProvider
	audit        *auditDispatcher
	metrics      *Metrics
	passwordHash *password.Bcrypt
	issuer       *jwt.Issuer
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Service) Close() {
	if s == nil {
		return
	}
	if s.audit != nil {
		s.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Service) AuditDropped() uint64 {
	if s == nil || s.audit == nil {
		return 0
	}
	return s.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Service) MetricsSnapshot() MetricsSnapshot {
	if s == nil || s.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return s.metrics.Snapshot()
}

func (s *Service) metricInc(id MetricID) {
	if s == nil || s.metrics == nil {
		return
	}
	s.metrics.Inc(id)
}

// Authenticate verifies username and password and issues a fresh token pair.
// An unknown username yields [ErrUserNotFound]; a wrong password yields
// [ErrInvalidCredentials]. No refresh record is created on any failure path.
func (s *Service) Authenticate(ctx context.Context, username, plaintext string) (TokenPair, error) {
	if s == nil || s.passwordHash == nil || s.issuer == nil {
		return TokenPair{}, ErrServiceNotReady
	}

	user, err := s.userProvider.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.metricInc(MetricAuthUserNotFound)
			s.emitAudit(ctx, auditEventAuthFailure, false, "", ErrUserNotFound, func() map[string]string {
				return map[string]string{
					"username": username,
					"reason":   "user_not_found",
				}
			})
			return TokenPair{}, ErrUserNotFound
		}
		s.metricInc(MetricAuthFailure)
		s.emitAudit(ctx, auditEventAuthFailure, false, "", err, func() map[string]string {
			return map[string]string{
				"username": username,
				"reason":   "provider_error",
			}
		})
		return TokenPair{}, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.passwordHash.Verify(plaintext, user.PasswordHash)
	if err != nil || !ok {
		s.metricInc(MetricAuthFailure)
		s.emitAudit(ctx, auditEventAuthFailure, false, user.ID, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"username": username,
				"reason":   "password_mismatch",
			}
		})
		return TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		s.metricInc(MetricStoreUnavailable)
		s.emitAudit(ctx, auditEventAuthFailure, false, user.ID, err, func() map[string]string {
			return map[string]string{
				"username": username,
				"reason":   "token_issuance",
			}
		})
		return TokenPair{}, err
	}

	s.metricInc(MetricAuthSuccess)
	s.metricInc(MetricTokenPairIssued)
	s.emitAudit(ctx, auditEventAuthSuccess, true, user.ID, nil, func() map[string]string {
		return map[string]string{
			"username": username,
		}
	})

	return pair, nil
}

// Refresh redeems a refresh token and rotates it into a new token pair.
// A token that fails validation yields [ErrRefreshInvalid]; a valid token
// whose record is absent (already redeemed or expired) yields
// [ErrRefreshReuse].
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if s == nil || s.issuer == nil {
		return TokenPair{}, ErrServiceNotReady
	}

	claims, err := s.issuer.ParseRefresh(refreshToken)
	if err != nil {
		s.metricInc(MetricRefreshFailure)
		s.emitAudit(ctx, auditEventRefreshInvalid, false, "", ErrRefreshInvalid, nil)
		return TokenPair{}, ErrRefreshInvalid
	}

	record, err := s.tokenStore.Redeem(ctx, claims.ID)
	if err != nil {
		switch {
		case errors.Is(err, tokenstore.ErrNotFound):
			s.metricInc(MetricRefreshReuseDetected)
			s.emitAudit(ctx, auditEventRefreshReuse, false, claims.Subject, ErrRefreshReuse, func() map[string]string {
				return map[string]string{
					"record_id": claims.ID,
				}
			})
			return TokenPair{}, ErrRefreshReuse
		case errors.Is(err, tokenstore.ErrUnavailable):
			s.metricInc(MetricStoreUnavailable)
			s.emitAudit(ctx, auditEventRefreshInvalid, false, claims.Subject, ErrStoreUnavailable, nil)
			return TokenPair{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		default:
			s.metricInc(MetricRefreshFailure)
			return TokenPair{}, err
		}
	}

	// A record redeemed for a different subject means the token was forged
	// or the store is corrupt; either way the token is not honored.
	if record.UserID != claims.Subject {
		s.metricInc(MetricRefreshFailure)
		s.emitAudit(ctx, auditEventRefreshInvalid, false, claims.Subject, ErrRefreshInvalid, func() map[string]string {
			return map[string]string{
				"reason": "subject_mismatch",
			}
		})
		return TokenPair{}, ErrRefreshInvalid
	}

	pair, err := s.issueTokens(ctx, record.UserID)
	if err != nil {
		s.metricInc(MetricStoreUnavailable)
		s.emitAudit(ctx, auditEventRefreshInvalid, false, record.UserID, err, func() map[string]string {
			return map[string]string{
				"reason": "token_issuance",
			}
		})
		return TokenPair{}, err
	}

	s.metricInc(MetricRefreshSuccess)
	s.metricInc(MetricTokenPairIssued)
	s.emitAudit(ctx, auditEventRefreshSuccess, true, record.UserID, nil, func() map[string]string {
		return map[string]string{
			"rotated_from": claims.ID,
		}
	})

	return pair, nil
}

// Register hashes the password and creates the account through the
// [UserProvider]. A duplicate username yields [ErrUsernameTaken].
func (s *Service) Register(ctx context.Context, username, plaintext string) (UserRecord, error) {
	if s == nil || s.passwordHash == nil {
		return UserRecord{}, ErrServiceNotReady
	}
	if username == "" {
		return UserRecord{}, errors.New("username must not be empty")
	}

	hash, err := s.passwordHash.Hash(plaintext)
	if err != nil {
		return UserRecord{}, err
	}

	user, err := s.userProvider.CreateUser(ctx, CreateUserInput{
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, ErrProviderDuplicateUsername) {
			s.metricInc(MetricRegisterDuplicate)
			s.emitAudit(ctx, auditEventRegisterDuplicate, false, "", ErrUsernameTaken, func() map[string]string {
				return map[string]string{
					"username": username,
				}
			})
			return UserRecord{}, ErrUsernameTaken
		}
		s.emitAudit(ctx, auditEventRegisterFailure, false, "", err, func() map[string]string {
			return map[string]string{
				"username": username,
			}
		})
		return UserRecord{}, fmt.Errorf("create user: %w", err)
	}

	s.metricInc(MetricRegisterSuccess)
	s.emitAudit(ctx, auditEventRegisterSuccess, true, user.ID, nil, func() map[string]string {
		return map[string]string{
			"username": username,
		}
	})

	return user, nil
}

// CurrentUser resolves an access token to its account record. Any token
// failure, and a valid token whose subject no longer exists, yield
// [ErrUnauthorized].
func (s *Service) CurrentUser(ctx context.Context, accessToken string) (UserRecord, error) {
	if s == nil || s.issuer == nil {
		return UserRecord{}, ErrServiceNotReady
	}

	start := time.Now()

	claims, err := s.issuer.ParseAccess(accessToken)
	if err != nil {
		s.metricInc(MetricCurrentUserRejected)
		s.emitAudit(ctx, auditEventCurrentUserRejected, false, "", ErrUnauthorized, func() map[string]string {
			return map[string]string{
				"reason": "invalid_token",
			}
		})
		return UserRecord{}, ErrUnauthorized
	}

	user, err := s.userProvider.GetUserByID(ctx, claims.Subject)
	if err != nil {
		s.metricInc(MetricCurrentUserRejected)
		if errors.Is(err, ErrUserNotFound) {
			s.emitAudit(ctx, auditEventCurrentUserRejected, false, claims.Subject, ErrUnauthorized, func() map[string]string {
				return map[string]string{
					"reason": "user_gone",
				}
			})
			return UserRecord{}, ErrUnauthorized
		}
		return UserRecord{}, fmt.Errorf("lookup user: %w", err)
	}

	s.metricInc(MetricCurrentUserSuccess)
	if s.metrics != nil {
		s.metrics.Observe(MetricValidateLatency, time.Since(start))
	}

	return user, nil
}

// issueTokens inserts a fresh single-use record and signs a pair bound to it.
// The refresh token's jti always references the record created here.
func (s *Service) issueTokens(ctx context.Context, userID string) (TokenPair, error) {
	recordID := uuid.NewString()

	record := tokenstore.Record{
		ID:        recordID,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.config.JWT.RefreshTTL),
	}
	if err := s.tokenStore.Save(ctx, record); err != nil {
		switch {
		case errors.Is(err, tokenstore.ErrDuplicateID):
			return TokenPair{}, fmt.Errorf("token record id collision: %w", err)
		case errors.Is(err, tokenstore.ErrUnavailable):
			return TokenPair{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		default:
			return TokenPair{}, err
		}
	}

	access, refresh, err := s.issuer.IssuePair(userID, recordID)
	if err != nil {
		// Signing failed after the insert; drop the orphan record.
		_, _ = s.tokenStore.Redeem(ctx, recordID)
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
