package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOTP fails the next call of an operation when its error is set.
type fakeOTP struct {
	sendErr, verifyErr, updateErr error
	calls                         []string
}

func (f *fakeOTP) SendOTP(_ context.Context, email string) error {
	f.calls = append(f.calls, "send:"+email)
	return f.sendErr
}

func (f *fakeOTP) VerifyOTP(_ context.Context, email, otp string) error {
	f.calls = append(f.calls, "verify:"+email+":"+otp)
	return f.verifyErr
}

func (f *fakeOTP) UpdatePassword(_ context.Context, email, pw string) error {
	f.calls = append(f.calls, "update:"+email+":"+pw)
	return f.updateErr
}

func TestResetFlow_Scenario(t *testing.T) {
	ctx := context.Background()
	svc := &fakeOTP{}
	f := NewResetFlow(svc, "a@b.com")
	assert.Equal(t, AwaitingEmail{Email: "a@b.com"}, f.Step())

	require.NoError(t, f.SendOTP(ctx, "a@b.com"))
	assert.Equal(t, AwaitingOTP{Email: "a@b.com"}, f.Step())

	svc.verifyErr = errors.New("400: invalid otp")
	err := f.VerifyOTP(ctx, "000000")
	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "verify OTP", se.Step)
	assert.ErrorContains(t, err, "invalid otp")
	assert.Equal(t, AwaitingOTP{Email: "a@b.com"}, f.Step())

	svc.verifyErr = nil
	require.NoError(t, f.VerifyOTP(ctx, "123456"))
	assert.Equal(t, AwaitingNewPassword{Email: "a@b.com"}, f.Step())

	callsBefore := len(svc.calls)
	_, err = f.UpdatePassword(ctx, "n3w", "n3x")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, callsBefore, len(svc.calls))
	assert.Equal(t, AwaitingNewPassword{Email: "a@b.com"}, f.Step())

	creds, err := f.UpdatePassword(ctx, "n3w", "n3w")
	require.NoError(t, err)
	assert.Equal(t, Credentials{Identifier: "a@b.com", Password: "n3w"}, creds)
	assert.True(t, f.Done())
	assert.Equal(t, []string{
		"send:a@b.com",
		"verify:a@b.com:000000",
		"verify:a@b.com:123456",
		"update:a@b.com:n3w",
	}, svc.calls)
}

func TestResetFlow_NeverAdvancesOnFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("503: Service Unavailable")

	f := NewResetFlow(&fakeOTP{sendErr: boom}, "")
	assert.ErrorIs(t, f.SendOTP(ctx, "a@b.com"), boom)
	assert.Equal(t, AwaitingEmail{Email: "a@b.com"}, f.Step())

	svc := &fakeOTP{}
	f = NewResetFlow(svc, "")
	require.NoError(t, f.SendOTP(ctx, "a@b.com"))
	require.NoError(t, f.VerifyOTP(ctx, "1"))
	svc.updateErr = boom
	_, err := f.UpdatePassword(ctx, "p", "p")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, AwaitingNewPassword{Email: "a@b.com"}, f.Step())
}

func TestResetFlow_ChangeEmail(t *testing.T) {
	ctx := context.Background()
	f := NewResetFlow(&fakeOTP{}, "")

	assert.ErrorIs(t, f.ChangeEmail(), ErrWrongStep)

	require.NoError(t, f.SendOTP(ctx, "old@b.com"))
	require.NoError(t, f.ChangeEmail())
	assert.Equal(t, AwaitingEmail{Email: "old@b.com"}, f.Step())

	require.NoError(t, f.SendOTP(ctx, "new@b.com"))
	require.NoError(t, f.VerifyOTP(ctx, "1"))
	assert.ErrorIs(t, f.ChangeEmail(), ErrWrongStep)
	assert.Equal(t, AwaitingNewPassword{Email: "new@b.com"}, f.Step())
}

func TestResetFlow_WrongStep(t *testing.T) {
	ctx := context.Background()
	svc := &fakeOTP{}
	f := NewResetFlow(svc, "a@b.com")

	assert.ErrorIs(t, f.VerifyOTP(ctx, "1"), ErrWrongStep)
	_, err := f.UpdatePassword(ctx, "p", "p")
	assert.ErrorIs(t, err, ErrWrongStep)

	require.NoError(t, f.SendOTP(ctx, "a@b.com"))
	assert.ErrorIs(t, f.SendOTP(ctx, "a@b.com"), ErrWrongStep)
	assert.Len(t, svc.calls, 1)
}

func TestResetFlow_LocalValidation(t *testing.T) {
	ctx := context.Background()
	svc := &fakeOTP{}
	f := NewResetFlow(svc, "")

	var ve *ValidationError
	require.ErrorAs(t, f.SendOTP(ctx, "   "), &ve)
	assert.Equal(t, "email", ve.Field)

	require.NoError(t, f.SendOTP(ctx, "a@b.com"))
	require.ErrorAs(t, f.VerifyOTP(ctx, ""), &ve)
	assert.Equal(t, "otp", ve.Field)

	require.NoError(t, f.VerifyOTP(ctx, "42"))
	_, err := f.UpdatePassword(ctx, "", "")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "password", ve.Field)

	assert.Equal(t, []string{"send:a@b.com", "verify:a@b.com:42"}, svc.calls)
}

func TestResetFlow_MismatchNeverReachesServer(t *testing.T) {
	pairs := [][2]string{
		{"a", "b"},
		{"secret", "Secret"},
		{"pass", "pass "},
		{"x", ""},
		{"", "x"},
		{"пароль", "парол"},
	}
	for i := 0; i < 20; i++ {
		pairs = append(pairs, [2]string{fmt.Sprintf("pw-%d", i), fmt.Sprintf("pw-%d", i+1)})
	}

	ctx := context.Background()
	for _, p := range pairs {
		svc := &fakeOTP{}
		f := NewResetFlow(svc, "")
		require.NoError(t, f.SendOTP(ctx, "a@b.com"))
		require.NoError(t, f.VerifyOTP(ctx, "1"))

		_, err := f.UpdatePassword(ctx, p[0], p[1])

		var ve *ValidationError
		assert.ErrorAs(t, err, &ve, "%q/%q", p[0], p[1])
		assert.Len(t, svc.calls, 2)
		assert.IsType(t, AwaitingNewPassword{}, f.Step())
	}
}

func TestResetFlow_CloseFromAnyStep(t *testing.T) {
	ctx := context.Background()

	f := NewResetFlow(&fakeOTP{}, "a@b.com")
	require.NoError(t, f.SendOTP(ctx, "a@b.com"))
	f.Close()
	assert.Equal(t, Closed{}, f.Step())
	assert.True(t, f.Done())

	assert.ErrorIs(t, f.VerifyOTP(ctx, "1"), ErrWrongStep)
	assert.ErrorIs(t, f.SendOTP(ctx, "a@b.com"), ErrWrongStep)
}
