package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller is not authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidCredentials covers both unknown-email and wrong-password login
// failures so the two cases stay indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNotVerified indicates a login attempt against an account that has not
// completed email verification.
var ErrNotVerified = errors.New("email not verified")

// ErrAlreadyVerified indicates a verification OTP was requested for an
// account that is already verified.
var ErrAlreadyVerified = errors.New("email already verified")

// ErrOTPNotFound indicates the account has no OTP on file.
var ErrOTPNotFound = errors.New("no OTP found")

// ErrOTPExpired indicates the stored OTP has passed its expiry.
var ErrOTPExpired = errors.New("OTP has expired")

// ErrOTPMismatch indicates the submitted OTP does not match the stored one.
var ErrOTPMismatch = errors.New("invalid OTP")

// ErrInvalidResetToken indicates the reset token failed signature, expiry or
// purpose validation.
var ErrInvalidResetToken = errors.New("invalid or expired reset token")
