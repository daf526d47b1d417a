package share

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/healthfolio/healthfolio/internal/platform/clock"
)

var (
	// ErrTokenNotFound reports a token value that was never minted (or was
	// already purged).
	ErrTokenNotFound = errors.New("share token not found")
	// ErrTokenExpired reports a token past its expiry. Expiry is an
	// expected outcome, not a system fault.
	ErrTokenExpired = errors.New("share token expired")
)

// tokenBytes gives 256 bits of randomness per token, well past the point
// where guessing is feasible even knowing the owner and issuance time.
const tokenBytes = 32

type Service struct {
	repo Repository
	clk  clock.Clock
	ttl  time.Duration
	log  zerolog.Logger

	done chan struct{}
}

func NewService(repo Repository, clk clock.Clock, ttl time.Duration, log zerolog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		repo: repo,
		clk:  clk,
		ttl:  ttl,
		log:  log,
		done: make(chan struct{}),
	}
}

// Mint creates a fresh share token for ownerID. Previously minted tokens
// are untouched; an owner may hold several concurrently valid shares.
func (s *Service) Mint(ctx context.Context, ownerID uuid.UUID) (*ShareToken, error) {
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("owner_id is required")
	}

	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	now := s.clk.Now()
	t := &ShareToken{
		Token:     base64.RawURLEncoding.EncodeToString(raw),
		OwnerID:   ownerID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Insert(ctx, t); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	// Best-effort housekeeping: reclaim rows the ticker has not gotten to
	// yet. A purge failure never fails the mint.
	if _, err := s.repo.DeleteExpiredBefore(ctx, now); err != nil {
		s.log.Debug().Err(err).Msg("mint-time purge skipped")
	}
	return t, nil
}

// Validate resolves a presented token to its owner. Unknown tokens fail
// ErrTokenNotFound; expired tokens fail ErrTokenExpired, every time, with no
// mutation — validation is safe to repeat from any number of holders within
// the window. A blank token is a caller bug, not a lookup miss.
func (s *Service) Validate(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, fmt.Errorf("token is required")
	}
	t, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	if t.Expired(s.clk.Now()) {
		return uuid.Nil, ErrTokenExpired
	}
	return t.OwnerID, nil
}

// PurgeExpired removes tokens past their expiry. Purging is housekeeping
// only; Validate stays correct no matter how stale the store is.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredBefore(ctx, s.clk.Now())
}

// StartPurgeLoop runs PurgeExpired on the given interval until Stop is
// called.
func (s *Service) StartPurgeLoop(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n, err := s.PurgeExpired(context.Background())
				if err != nil {
					s.log.Error().Err(err).Msg("share token purge failed")
					continue
				}
				if n > 0 {
					s.log.Debug().Int64("purged", n).Msg("share tokens purged")
				}
			case <-s.done:
				return
			}
		}
	}()
}

// Stop terminates the purge loop.
func (s *Service) Stop() {
	close(s.done)
}
