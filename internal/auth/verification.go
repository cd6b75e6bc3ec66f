package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/ratelimit"
)

var (
	ErrInvalidNumber = apperror.New(http.StatusBadRequest, "customer number must contain 6 to 15 digits")
	ErrInvalidCode   = apperror.New(http.StatusUnauthorized, "invalid or expired verification code")
	ErrTooManyCodes  = apperror.New(http.StatusTooManyRequests, "too many verification codes requested, try again later")
)

const (
	minNumberDigits = 6
	maxNumberDigits = 15

	// MaxVerifyFailures is how many wrong codes burn a pending code.
	MaxVerifyFailures = 5
)

// Session is the result of a successful verification.
type Session struct {
	CustomerNumber string
	Admin          bool
	AccessToken    string
	ExpiresAt      time.Time
}

// Verifier signs customers in with one-time codes sent to their number.
type Verifier interface {
	// SendCode issues a fresh code for number and returns it with the normalized number.
	// Delivery is left to the caller.
	SendCode(ctx context.Context, number string) (code, normalized string, err error)
	Verify(ctx context.Context, number, code string) (*Session, error)
	// Logout discards any code still pending for number. Access tokens expire on their own.
	Logout(ctx context.Context, number string) error
}

type verifier struct {
	store   CodeStore
	hasher  CodeHasher
	jwt     *JWTManager
	limiter *ratelimit.Limiter
	ttl     time.Duration
	admins  map[string]bool
	log     *zap.Logger
}

// NewVerifier builds a Verifier. limiter may be nil to disable per-number limits.
func NewVerifier(store CodeStore, hasher CodeHasher, jwt *JWTManager, limiter *ratelimit.Limiter, ttl time.Duration, adminNumbers []string, log *zap.Logger) Verifier {
	admins := make(map[string]bool, len(adminNumbers))
	for _, n := range adminNumbers {
		if d := NormalizeNumber(n); d != "" {
			admins[d] = true
		}
	}
	return &verifier{
		store:   store,
		hasher:  hasher,
		jwt:     jwt,
		limiter: limiter,
		ttl:     ttl,
		admins:  admins,
		log:     log.Named("auth"),
	}
}

// NormalizeNumber keeps only the digits of a customer number.
func NormalizeNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func validNumber(number string) (string, error) {
	n := NormalizeNumber(number)
	if len(n) < minNumberDigits || len(n) > maxNumberDigits {
		return "", ErrInvalidNumber
	}
	return n, nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// generateCode returns a uniformly random code in 100000..999999.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate verification code failed: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func (v *verifier) SendCode(ctx context.Context, number string) (string, string, error) {
	n, err := validNumber(number)
	if err != nil {
		return "", "", err
	}

	if v.limiter != nil {
		ok, err := v.limiter.Allow(ctx, n)
		switch {
		case err != nil:
			v.log.Warn("verification rate limiter unavailable", zap.Error(err))
		case !ok:
			return "", "", ErrTooManyCodes
		}
	}

	code, err := generateCode()
	if err != nil {
		return "", "", err
	}
	hash, err := v.hasher.Hash(code)
	if err != nil {
		return "", "", fmt.Errorf("hash verification code failed: %w", err)
	}
	if err := v.store.Put(ctx, n, hash, v.ttl); err != nil {
		return "", "", err
	}

	v.log.Info("verification code issued", zap.String("customer_number", n))
	return code, n, nil
}

func (v *verifier) Verify(ctx context.Context, number, code string) (*Session, error) {
	n, err := validNumber(number)
	if err != nil {
		return nil, err
	}

	hash, err := v.store.Get(ctx, n)
	if errors.Is(err, errCodeNotFound) {
		return nil, ErrInvalidCode
	}
	if err != nil {
		return nil, err
	}

	if err := v.hasher.Compare(hash, stripSpace(code)); err != nil {
		failures, ferr := v.store.Fail(ctx, n)
		if ferr != nil {
			return nil, ferr
		}
		if failures >= MaxVerifyFailures {
			if err := v.store.Delete(ctx, n); err != nil {
				return nil, err
			}
			v.log.Warn("verification code burned after repeated failures", zap.String("customer_number", n))
		}
		return nil, ErrInvalidCode
	}

	if err := v.store.Delete(ctx, n); err != nil {
		return nil, err
	}

	admin := v.admins[n]
	token, expiresAt, err := v.jwt.GenerateAccessToken(n, admin)
	if err != nil {
		return nil, err
	}

	v.log.Info("customer signed in", zap.String("customer_number", n), zap.Bool("admin", admin))
	return &Session{
		CustomerNumber: n,
		Admin:          admin,
		AccessToken:    token,
		ExpiresAt:      expiresAt,
	}, nil
}

func (v *verifier) Logout(ctx context.Context, number string) error {
	n := NormalizeNumber(number)
	if n == "" {
		return nil
	}
	return v.store.Delete(ctx, n)
}
