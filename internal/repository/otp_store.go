package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"gram-seva/internal/domain"
)

// OTPStore holds the transient side of an OTP challenge: the
// {phone, name, code} triple with a TTL, plus a per-phone attempt
// counter. The citizen row's otp_code column remains the durable
// fallback copy.
type OTPStore interface {
	SaveChallenge(ctx context.Context, challenge *domain.OTPChallenge, ttl time.Duration) error
	GetChallenge(ctx context.Context, phone string) (*domain.OTPChallenge, error)
	DeleteChallenge(ctx context.Context, phone string) error
	IncrAttempts(ctx context.Context, phone string, window time.Duration) (int64, error)
	ClearAttempts(ctx context.Context, phone string) error
}

type otpStore struct {
	client *redis.Client
}

func NewOTPStore(client *redis.Client) OTPStore {
	return &otpStore{client: client}
}

func challengeKey(phone string) string {
	return "otp:challenge:" + phone
}

func attemptsKey(phone string) string {
	return "otp:attempts:" + phone
}

func (s *otpStore) SaveChallenge(ctx context.Context, challenge *domain.OTPChallenge, ttl time.Duration) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, challengeKey(challenge.Phone), data, ttl).Err()
}

func (s *otpStore) GetChallenge(ctx context.Context, phone string) (*domain.OTPChallenge, error) {
	data, err := s.client.Get(ctx, challengeKey(phone)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var challenge domain.OTPChallenge
	if err := json.Unmarshal(data, &challenge); err != nil {
		return nil, fmt.Errorf("corrupt challenge for %s: %w", phone, err)
	}
	return &challenge, nil
}

func (s *otpStore) DeleteChallenge(ctx context.Context, phone string) error {
	return s.client.Del(ctx, challengeKey(phone)).Err()
}

// IncrAttempts counts verification attempts per phone. The TTL is set on
// the first increment only, so the window does not slide.
func (s *otpStore) IncrAttempts(ctx context.Context, phone string, window time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, attemptsKey(phone)).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, attemptsKey(phone), window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

func (s *otpStore) ClearAttempts(ctx context.Context, phone string) error {
	return s.client.Del(ctx, attemptsKey(phone)).Err()
}
