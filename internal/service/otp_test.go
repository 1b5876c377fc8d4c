package service

import (
	"sync"
	"testing"
	"time"

	"societyhub/internal/model"
	"societyhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPService_RequestAndVerify(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := e.fx.CreateSociety("Alpha")
	owner := e.fx.CreateUser("Olga", model.RoleOwner, s.ID)
	sender := &fakeSender{}
	svc := e.otpService(sender)
	defer svc.Close()

	issued, err := svc.Request(ctx, owner.Phone)
	require.NoError(t, err)
	assert.Empty(t, issued.Code, "code is not echoed unless enabled")
	code := sender.last(owner.Phone)
	require.Len(t, code, 6)

	resp, err := svc.Verify(ctx, owner.Phone, code)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, owner.ID, resp.User.ID)

	_, err = svc.Verify(ctx, owner.Phone, code)
	assert.ErrorIs(t, err, ErrOTPUsed)
}

func TestOTPService_EchoCode(t *testing.T) {
	e := newEnv(t)
	e.cfg.OTP.Echo = true
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := e.fx.CreateUser("Tom", model.RoleTenant, e.fx.CreateSociety("Alpha").ID)
	svc := e.otpService(&fakeSender{})
	defer svc.Close()

	issued, err := svc.Request(ctx, u.Phone)
	require.NoError(t, err)
	assert.Len(t, issued.Code, 6)
}

func TestOTPService_UnknownPhone(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	svc := e.otpService(&fakeSender{})
	defer svc.Close()

	_, err := svc.Request(ctx, "+919999999999")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestOTPService_WrongCode(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := e.fx.CreateUser("Tom", model.RoleTenant, e.fx.CreateSociety("Alpha").ID)
	sender := &fakeSender{}
	svc := e.otpService(sender)
	defer svc.Close()

	_, err := svc.Request(ctx, u.Phone)
	require.NoError(t, err)

	wrong := "000000"
	if sender.last(u.Phone) == wrong {
		wrong = "111111"
	}
	_, err = svc.Verify(ctx, u.Phone, wrong)
	assert.ErrorIs(t, err, ErrOTPInvalid)
}

func TestOTPService_ExpiredCodeRejected(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := e.fx.CreateUser("Tom", model.RoleTenant, e.fx.CreateSociety("Alpha").ID)
	sender := &fakeSender{}
	svc := e.otpService(sender)
	defer svc.Close()

	_, err := svc.Request(ctx, u.Phone)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(e.cfg.OTP.TTL) }
	_, err = svc.Verify(ctx, u.Phone, sender.last(u.Phone))
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestOTPService_ConcurrentVerifySucceedsOnce(t *testing.T) {
	e := newEnv(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := e.fx.CreateUser("Tom", model.RoleTenant, e.fx.CreateSociety("Alpha").ID)
	sender := &fakeSender{}
	svc := e.otpService(sender)
	defer svc.Close()

	_, err := svc.Request(ctx, u.Phone)
	require.NoError(t, err)
	code := sender.last(u.Phone)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		errs      []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Verify(ctx, u.Phone, code)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			errs = append(errs, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	for _, err := range errs {
		assert.ErrorIs(t, err, ErrOTPUsed)
	}
}

func TestOTPService_RateLimited(t *testing.T) {
	e := newEnv(t)
	e.cfg.OTP.RateLimit = 2
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := e.fx.CreateUser("Tom", model.RoleTenant, e.fx.CreateSociety("Alpha").ID)
	svc := e.otpService(&fakeSender{})
	defer svc.Close()

	for i := 0; i < 2; i++ {
		resp, err := svc.Request(ctx, u.Phone)
		require.NoError(t, err)
		assert.Equal(t, 1-i, resp.RequestsRemaining)
	}
	_, err := svc.Request(ctx, u.Phone)
	assert.ErrorIs(t, err, ErrRateLimited)
}
