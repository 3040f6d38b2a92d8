package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// ShareToken is a validated read-only share grant for one car.
type ShareToken struct {
	OwnerID   string
	CarID     string
	TokenID   string
	ExpiresAt time.Time
}

// ShareLinkService issues and redeems single-use, read-only share tokens for
// a car. Tokens are HMAC-signed JWTs. Single use is enforced through Redis
// when one is configured, so redemption works across server instances; on
// single-node deployments without Redis an in-process store takes over.
type ShareLinkService struct {
	secretKey []byte
	redis     *redis.Client
	local     *cache.Cache
}

func NewShareLinkService(secretKey []byte, redis *redis.Client) *ShareLinkService {
	svc := &ShareLinkService{
		secretKey: secretKey,
		redis:     redis,
	}
	if redis == nil {
		svc.local = cache.New(24*time.Hour, time.Hour)
	}
	return svc
}

// GenerateToken signs a share token for one car, valid for ttl.
func (s *ShareLinkService) GenerateToken(ownerID, carID string, ttl time.Duration) (string, error) {
	tokenID := uuid.New().String()
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id": ownerID,
		"car_id":  carID,
		"jti":     tokenID,
		"exp":     now.Add(ttl).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign share token: %w", err)
	}

	return tokenString, nil
}

// RedeemToken validates a share token and consumes it. The consume step is an
// atomic SETNX, so two concurrent redemptions of the same token cannot both
// succeed.
func (s *ShareLinkService) RedeemToken(ctx context.Context, tokenString string) (*ShareToken, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse share token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid share token")
	}

	ownerID, ok := (*claims)["user_id"].(string)
	if !ok {
		return nil, errors.New("missing or invalid user_id claim")
	}

	carID, ok := (*claims)["car_id"].(string)
	if !ok {
		return nil, errors.New("missing or invalid car_id claim")
	}

	tokenID, ok := (*claims)["jti"].(string)
	if !ok {
		return nil, errors.New("missing or invalid jti claim")
	}

	expFloat, ok := (*claims)["exp"].(float64)
	if !ok {
		return nil, errors.New("missing or invalid exp claim")
	}
	expiresAt := time.Unix(int64(expFloat), 0)

	if time.Now().After(expiresAt) {
		return nil, errors.New("share token expired")
	}

	// Consume. Keep the tombstone until the token would have expired anyway.
	ttl := time.Until(expiresAt)
	if ttl < time.Minute {
		ttl = time.Minute
	}
	if err := s.consume(ctx, tokenID, ttl); err != nil {
		return nil, err
	}

	return &ShareToken{
		OwnerID:   ownerID,
		CarID:     carID,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

// consume marks a token ID as used. Both paths are first-writer-wins, so two
// concurrent redemptions of the same token cannot both succeed.
func (s *ShareLinkService) consume(ctx context.Context, tokenID string, ttl time.Duration) error {
	key := "used_share_token:" + tokenID

	if s.redis == nil {
		if err := s.local.Add(key, true, ttl); err != nil {
			return errors.New("share token already used")
		}
		return nil
	}

	set, err := s.redis.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to consume share token: %w", err)
	}
	if !set {
		return errors.New("share token already used")
	}
	return nil
}
