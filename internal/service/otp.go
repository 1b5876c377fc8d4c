package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"societyhub/internal/config"
	"societyhub/internal/model"
	"societyhub/internal/monitoring"
	"societyhub/internal/repository"
	"societyhub/pkg/ratelimit"
	"societyhub/pkg/util"

	"github.com/rs/zerolog/log"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrRateLimited  = errors.New("too many otp requests, try again later")
	ErrOTPInvalid   = errors.New("invalid otp")
	ErrOTPExpired   = errors.New("otp expired")
	ErrOTPUsed      = errors.New("otp already used")
)

// OTPSender delivers a code to the phone owner
type OTPSender interface {
	Send(ctx context.Context, phone, code string, expiresAt time.Time) error
}

// LogOTPSender writes codes to the log; useful until an SMS gateway is wired.
type LogOTPSender struct{}

func (LogOTPSender) Send(_ context.Context, phone, code string, expiresAt time.Time) error {
	log.Info().Str("phone", phone).Str("code", code).Time("expires_at", expiresAt).Msg("OTP issued")
	return nil
}

// OTPService issues and verifies one-time login codes
type OTPService struct {
	otps    repository.IOTPRepository
	users   repository.IUserRepository
	auth    *AuthService
	sender  OTPSender
	limiter *ratelimit.Limiter
	cfg     *config.Config
	now     func() time.Time
}

func NewOTPService(otps repository.IOTPRepository, users repository.IUserRepository, auth *AuthService, sender OTPSender, cfg *config.Config) *OTPService {
	if sender == nil {
		sender = LogOTPSender{}
	}
	return &OTPService{
		otps:    otps,
		users:   users,
		auth:    auth,
		sender:  sender,
		limiter: ratelimit.New(cfg.OTP.RateLimit, cfg.OTP.RateWindow),
		cfg:     cfg,
		now:     time.Now,
	}
}

// Close stops the rate limiter's background cleanup.
func (s *OTPService) Close() {
	s.limiter.Stop()
}

// Request issues a fresh code for a registered phone
func (s *OTPService) Request(ctx context.Context, phone string) (*model.OTPIssuedResponse, error) {
	phone = strings.TrimSpace(phone)
	if !s.limiter.Allow(phone) {
		return nil, ErrRateLimited
	}

	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	code, err := util.GenerateOTP(s.cfg.OTP.Length)
	if err != nil {
		return nil, err
	}
	otp := &model.OTP{
		Phone:     phone,
		Code:      code,
		ExpiresAt: s.now().Add(s.cfg.OTP.TTL),
	}
	if err := s.otps.Create(ctx, otp); err != nil {
		return nil, fmt.Errorf("failed to store otp: %w", err)
	}
	if err := s.sender.Send(ctx, phone, code, otp.ExpiresAt); err != nil {
		return nil, fmt.Errorf("failed to send otp: %w", err)
	}
	monitoring.OTPIssued.Inc()

	resp := &model.OTPIssuedResponse{
		Message:           "OTP sent",
		ExpiresAt:         otp.ExpiresAt,
		RequestsRemaining: s.limiter.Remaining(phone),
	}
	if s.cfg.OTP.Echo {
		resp.Code = code
	}
	return resp, nil
}

// Verify consumes a code and returns a session token. A code succeeds at
// most once, even under concurrent verification.
func (s *OTPService) Verify(ctx context.Context, phone, code string) (*model.AuthResponse, error) {
	resp, err := s.verify(ctx, strings.TrimSpace(phone), strings.TrimSpace(code))
	monitoring.OTPVerifications.WithLabelValues(verifyResult(err)).Inc()
	return resp, err
}

func (s *OTPService) verify(ctx context.Context, phone, code string) (*model.AuthResponse, error) {
	otp, err := s.otps.FindLatest(ctx, phone, code)
	if err != nil {
		return nil, fmt.Errorf("failed to load otp: %w", err)
	}
	if otp == nil {
		return nil, ErrOTPInvalid
	}
	if otp.Used {
		return nil, ErrOTPUsed
	}
	if otp.Expired(s.now()) {
		return nil, ErrOTPExpired
	}

	consumed, err := s.otps.MarkUsed(ctx, otp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to consume otp: %w", err)
	}
	if !consumed {
		return nil, ErrOTPUsed
	}

	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	s.limiter.Reset(phone)
	return s.auth.IssueFor(user)
}

func verifyResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrOTPInvalid):
		return "invalid"
	case errors.Is(err, ErrOTPExpired):
		return "expired"
	case errors.Is(err, ErrOTPUsed):
		return "used"
	default:
		return "error"
	}
}
