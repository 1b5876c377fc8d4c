package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"societyhub/internal/config"
	"societyhub/internal/repository"
	"societyhub/internal/testutil"

	"gorm.io/gorm"
)

type fakeSender struct {
	mu    sync.Mutex
	codes map[string]string
}

func (f *fakeSender) Send(_ context.Context, phone, code string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.codes == nil {
		f.codes = make(map[string]string)
	}
	f.codes[phone] = code
	return nil
}

func (f *fakeSender) last(phone string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.codes[phone]
}

type published struct {
	societyID uint
	eventType string
}

type fakePublisher struct {
	events []published
}

func (f *fakePublisher) Publish(societyID uint, eventType string, _ interface{}) {
	f.events = append(f.events, published{societyID: societyID, eventType: eventType})
}

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Auth.JWTSecret = "test-secret"
	cfg.OTP.RateLimit = 100
	cfg.OTP.RateWindow = time.Minute
	return cfg
}

type env struct {
	db   *gorm.DB
	fx   *testutil.Fixtures
	cfg  *config.Config
	auth *AuthService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cfg := testConfig()
	return &env{
		db:   db,
		fx:   testutil.NewFixtures(t, db),
		cfg:  cfg,
		auth: NewAuthService(repository.NewUserRepository(db), NewMemoryUserCache(time.Minute), cfg),
	}
}

func (e *env) otpService(sender OTPSender) *OTPService {
	db := e.db
	return NewOTPService(repository.NewOTPRepository(db), repository.NewUserRepository(db), e.auth, sender, e.cfg)
}

func ptr[T any](v T) *T { return &v }
