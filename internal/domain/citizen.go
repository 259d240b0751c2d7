package domain

import (
	"time"

	"github.com/google/uuid"
)

// Citizen is a village resident identified by a 10-digit phone number.
// The otp_code column mirrors the pending challenge and is nulled on
// successful verification.
type Citizen struct {
	ID         uuid.UUID `json:"id" db:"citizen_id"`
	Phone      string    `json:"phone" db:"phone"`
	FullName   string    `json:"full_name" db:"full_name"`
	OTPCode    *string   `json:"-" db:"otp_code"`
	IsVerified bool      `json:"is_verified" db:"is_verified"`
	IsBlocked  bool      `json:"is_blocked" db:"is_blocked"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

type RequestOTPInput struct {
	Phone string `json:"phone" validate:"required,len=10,numeric"`
	Name  string `json:"name" validate:"required,min=2"`
}

type RequestLoginOTPInput struct {
	Phone string `json:"phone" validate:"required,len=10,numeric"`
}

type VerifyOTPInput struct {
	Phone string `json:"phone" validate:"required,len=10,numeric"`
	Code  string `json:"code" validate:"required"`
}

// OTPChallenge is the transient challenge held in Redis while a citizen
// proves control of a phone number. The citizen row's otp_code column
// carries a second copy used as fallback when the Redis entry is gone.
type OTPChallenge struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Code  string `json:"code"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
