package auth

import (
	"context"
	"strings"
	"sync"
)

// OTPService is the server side of password recovery.
type OTPService interface {
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	UpdatePassword(ctx context.Context, email, newPassword string) error
}

// Step is one state of a ResetFlow.
type Step interface {
	Name() string
	isStep()
}

type AwaitingEmail struct{ Email string }
type AwaitingOTP struct{ Email string }
type AwaitingNewPassword struct{ Email string }

// Completed carries the credentials to prefill the login form with. The
// user is not logged in.
type Completed struct{ Credentials Credentials }

type Closed struct{}

func (AwaitingEmail) Name() string       { return "send OTP" }
func (AwaitingOTP) Name() string         { return "verify OTP" }
func (AwaitingNewPassword) Name() string { return "update password" }
func (Completed) Name() string           { return "completed" }
func (Closed) Name() string              { return "closed" }

func (AwaitingEmail) isStep()       {}
func (AwaitingOTP) isStep()         {}
func (AwaitingNewPassword) isStep() {}
func (Completed) isStep()           {}
func (Closed) isStep()              {}

type Credentials struct {
	Identifier string
	Password   string
}

// ResetFlow walks AwaitingEmail -> AwaitingOTP -> AwaitingNewPassword ->
// Completed. A step only advances after the server acknowledged it.
type ResetFlow struct {
	svc OTPService

	mu   sync.Mutex
	step Step
}

// NewResetFlow opens the flow with email prefilled (usually whatever was
// typed into the login form).
func NewResetFlow(svc OTPService, email string) *ResetFlow {
	return &ResetFlow{svc: svc, step: AwaitingEmail{Email: strings.TrimSpace(email)}}
}

func (f *ResetFlow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Done reports whether the flow reached Completed or Closed.
func (f *ResetFlow) Done() bool {
	switch f.Step().(type) {
	case Completed, Closed:
		return true
	}
	return false
}

// SendOTP requests a code for email. Valid only in AwaitingEmail.
func (f *ResetFlow) SendOTP(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)

	f.mu.Lock()
	defer f.mu.Unlock()

	cur, ok := f.step.(AwaitingEmail)
	if !ok {
		return ErrWrongStep
	}
	cur.Email = email
	f.step = cur

	if email == "" {
		return &ValidationError{Field: "email", Message: "is required"}
	}
	if err := f.svc.SendOTP(ctx, email); err != nil {
		return &StepError{Step: cur.Name(), Err: err}
	}
	f.step = AwaitingOTP{Email: email}
	return nil
}

// VerifyOTP checks the code against the remembered email. Valid only in
// AwaitingOTP.
func (f *ResetFlow) VerifyOTP(ctx context.Context, otp string) error {
	otp = strings.TrimSpace(otp)

	f.mu.Lock()
	defer f.mu.Unlock()

	cur, ok := f.step.(AwaitingOTP)
	if !ok {
		return ErrWrongStep
	}
	if otp == "" {
		return &ValidationError{Field: "otp", Message: "is required"}
	}
	if err := f.svc.VerifyOTP(ctx, cur.Email, otp); err != nil {
		return &StepError{Step: cur.Name(), Err: err}
	}
	f.step = AwaitingNewPassword{Email: cur.Email}
	return nil
}

// ChangeEmail goes back from AwaitingOTP to AwaitingEmail, keeping the email
// for editing.
func (f *ResetFlow) ChangeEmail() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	cur, ok := f.step.(AwaitingOTP)
	if !ok {
		return ErrWrongStep
	}
	f.step = AwaitingEmail{Email: cur.Email}
	return nil
}

// UpdatePassword sets the new password. Both values must be non-empty and
// equal; that is checked before any request. On success the flow completes
// and returns the credentials for the login form.
func (f *ResetFlow) UpdatePassword(ctx context.Context, newPassword, confirm string) (Credentials, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cur, ok := f.step.(AwaitingNewPassword)
	if !ok {
		return Credentials{}, ErrWrongStep
	}
	if newPassword == "" || confirm == "" {
		return Credentials{}, &ValidationError{Field: "password", Message: "enter and confirm the new password"}
	}
	if newPassword != confirm {
		return Credentials{}, &ValidationError{Field: "confirm", Message: "passwords do not match"}
	}
	if err := f.svc.UpdatePassword(ctx, cur.Email, newPassword); err != nil {
		return Credentials{}, &StepError{Step: cur.Name(), Err: err}
	}

	creds := Credentials{Identifier: cur.Email, Password: newPassword}
	f.step = Completed{Credentials: creds}
	return creds, nil
}

// Close discards the flow at any step.
func (f *ResetFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.step = Closed{}
}
