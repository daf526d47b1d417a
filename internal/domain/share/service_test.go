package share

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/healthfolio/healthfolio/internal/platform/clock"
)

type mockTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*ShareToken
}

func newMockTokenRepo() *mockTokenRepo {
	return &mockTokenRepo{tokens: map[string]*ShareToken{}}
}

func (m *mockTokenRepo) Insert(ctx context.Context, t *ShareToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.tokens[t.Token] = &cp
	return nil
}

func (m *mockTokenRepo) GetByToken(ctx context.Context, token string) (*ShareToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[token]
	if !ok {
		return nil, ErrTokenNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *mockTokenRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, t := range m.tokens {
		if cutoff.After(t.ExpiresAt) {
			delete(m.tokens, k)
			n++
		}
	}
	return n, nil
}

func newTestService(clk clock.Clock) (*Service, *mockTokenRepo) {
	repo := newMockTokenRepo()
	return NewService(repo, clk, DefaultTTL, zerolog.Nop()), repo
}

func TestMint_and_Validate(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	svc, _ := newTestService(clk)
	owner := uuid.New()

	tok, err := svc.Mint(context.Background(), owner)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("expected non-empty token value")
	}
	if want := clk.Now().Add(10 * time.Minute); !tok.ExpiresAt.Equal(want) {
		t.Errorf("expected expiry %v, got %v", want, tok.ExpiresAt)
	}

	got, err := svc.Validate(context.Background(), tok.Token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if got != owner {
		t.Errorf("expected owner %s, got %s", owner, got)
	}
}

func TestMint_RequiresOwner(t *testing.T) {
	svc, _ := newTestService(clock.NewFake(time.Now()))

	if _, err := svc.Mint(context.Background(), uuid.Nil); err == nil {
		t.Error("expected error for nil owner id")
	}
}

func TestMint_TokensAreUnique(t *testing.T) {
	svc, _ := newTestService(clock.NewFake(time.Now()))
	owner := uuid.New()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		tok, err := svc.Mint(context.Background(), owner)
		if err != nil {
			t.Fatalf("Mint failed: %v", err)
		}
		if seen[tok.Token] {
			t.Fatalf("duplicate token minted: %q", tok.Token)
		}
		seen[tok.Token] = true
	}
}

func TestValidate_UnknownToken(t *testing.T) {
	svc, _ := newTestService(clock.NewFake(time.Now()))

	_, err := svc.Validate(context.Background(), "never-minted")
	if !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestValidate_BlankToken(t *testing.T) {
	svc, _ := newTestService(clock.NewFake(time.Now()))

	_, err := svc.Validate(context.Background(), "")
	if err == nil {
		t.Fatal("expected error for blank token")
	}
	if errors.Is(err, ErrTokenNotFound) {
		t.Error("blank token should not be reported as a lookup miss")
	}
}

func TestValidate_JustInsideWindow(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	svc, _ := newTestService(clk)
	owner := uuid.New()

	tok, err := svc.Mint(context.Background(), owner)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	clk.Advance(9*time.Minute + 59*time.Second)
	if _, err := svc.Validate(context.Background(), tok.Token); err != nil {
		t.Errorf("expected token valid at 9m59s, got %v", err)
	}

	// Boundary instant: expiry is strictly after ExpiresAt.
	clk.Advance(1 * time.Second)
	if _, err := svc.Validate(context.Background(), tok.Token); err != nil {
		t.Errorf("expected token valid exactly at expiry, got %v", err)
	}
}

func TestValidate_Expired(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	svc, _ := newTestService(clk)
	owner := uuid.New()

	tok, err := svc.Mint(context.Background(), owner)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	clk.Advance(10*time.Minute + 1*time.Second)

	// Expiry must hold on every attempt, not just the first.
	for i := 0; i < 3; i++ {
		_, err := svc.Validate(context.Background(), tok.Token)
		if !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("attempt %d: expected ErrTokenExpired, got %v", i+1, err)
		}
	}
}

func TestMint_DoesNotAffectPriorTokens(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	svc, _ := newTestService(clk)
	owner := uuid.New()

	first, err := svc.Mint(context.Background(), owner)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	clk.Advance(5 * time.Minute)
	second, err := svc.Mint(context.Background(), owner)
	if err != nil {
		t.Fatalf("second Mint failed: %v", err)
	}

	// Both tokens stay valid within their own windows.
	if _, err := svc.Validate(context.Background(), first.Token); err != nil {
		t.Errorf("first token invalidated by second mint: %v", err)
	}
	if _, err := svc.Validate(context.Background(), second.Token); err != nil {
		t.Errorf("second token invalid: %v", err)
	}

	// First expires on its own schedule; second survives it.
	clk.Advance(5*time.Minute + 1*time.Second)
	if _, err := svc.Validate(context.Background(), first.Token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected first token expired, got %v", err)
	}
	if _, err := svc.Validate(context.Background(), second.Token); err != nil {
		t.Errorf("second token should still be valid: %v", err)
	}
}

func TestPurgeExpired(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	svc, repo := newTestService(clk)
	owner := uuid.New()

	old, err := svc.Mint(context.Background(), owner)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	clk.Advance(8 * time.Minute)
	fresh, err := svc.Mint(context.Background(), owner)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	clk.Advance(3 * time.Minute)
	n, err := svc.PurgeExpired(context.Background())
	if err != nil {
		t.Fatalf("PurgeExpired failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 token purged, got %d", n)
	}

	if _, ok := repo.tokens[old.Token]; ok {
		t.Error("expected expired token removed from store")
	}
	if _, ok := repo.tokens[fresh.Token]; !ok {
		t.Error("expected live token retained")
	}

	// A purged token and a never-minted token look the same.
	if _, err := svc.Validate(context.Background(), old.Token); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("expected ErrTokenNotFound after purge, got %v", err)
	}
}

func TestMint_PurgesStaleTokens(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	svc, repo := newTestService(clk)
	owner := uuid.New()

	stale, err := svc.Mint(context.Background(), owner)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	clk.Advance(11 * time.Minute)
	fresh, err := svc.Mint(context.Background(), owner)
	if err != nil {
		t.Fatalf("second Mint failed: %v", err)
	}

	// Minting reclaims expired rows without waiting for the ticker; the
	// stale token ends up indistinguishable from one never minted.
	if _, ok := repo.tokens[stale.Token]; ok {
		t.Error("expected expired token swept on mint")
	}
	if _, err := svc.Validate(context.Background(), stale.Token); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("expected ErrTokenNotFound for swept token, got %v", err)
	}
	if _, err := svc.Validate(context.Background(), fresh.Token); err != nil {
		t.Errorf("fresh token must be unaffected: %v", err)
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	svc, repo := newTestService(clk)
	owner := uuid.New()

	tok, err := svc.Mint(context.Background(), owner)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		if _, err := svc.Validate(context.Background(), tok.Token); err != nil {
			t.Fatalf("Validate %d failed: %v", i+1, err)
		}
	}

	stored := repo.tokens[tok.Token]
	if !stored.ExpiresAt.Equal(tok.ExpiresAt) {
		t.Error("validation must not touch the stored expiry")
	}
}
