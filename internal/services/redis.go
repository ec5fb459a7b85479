package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/coastalrides/bikerental-backend/internal/verification"
	"github.com/go-redsync/redsync/v4"
	goredis "github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

var ErrSessionNotFound = errors.New("verification session not found or expired")

const (
	verificationSessionTTL  = 30 * time.Minute
	availabilitySnapshotTTL = 30 * time.Second
)

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// NewBookingLocker builds the redsync instance used to serialize booking
// writes per bike. One authoritative lock per bike id, so two clients that
// both observed "available" cannot both insert overlapping bookings.
func NewBookingLocker() *redsync.Redsync {
	pool := goredis.NewPool(RedisClient)
	return redsync.New(pool)
}

// BookingMutex returns the per-bike mutex guarding booking creation/update.
func BookingMutex(rs *redsync.Redsync, bikeID uint) *redsync.Mutex {
	return rs.NewMutex(
		fmt.Sprintf("lock:bike:%d:booking", bikeID),
		redsync.WithExpiry(8*time.Second),
		redsync.WithTries(16),
	)
}

// SaveVerificationSession stores wizard state between steps
func SaveVerificationSession(ctx context.Context, session *verification.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("verification:session:%s", session.ID)
	if err := RedisClient.Set(ctx, key, data, verificationSessionTTL).Err(); err != nil {
		return err
	}

	// The completion token maps back to the session so booking create can
	// consume it without knowing the session id.
	if session.Token != "" {
		tokenKey := fmt.Sprintf("verification:token:%s", session.Token)
		return RedisClient.Set(ctx, tokenKey, session.ID, verificationSessionTTL).Err()
	}
	return nil
}

// GetVerificationSession retrieves wizard state by session id
func GetVerificationSession(ctx context.Context, sessionID string) (*verification.Session, error) {
	key := fmt.Sprintf("verification:session:%s", sessionID)
	data, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session verification.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteVerificationSession removes wizard state, e.g. after token consumption
func DeleteVerificationSession(ctx context.Context, sessionID string) error {
	key := fmt.Sprintf("verification:session:%s", sessionID)
	return RedisClient.Del(ctx, key).Err()
}

// ValidateVerificationToken checks a completion token belongs to the user and
// points at a completed session, without burning it. Callers validate before
// doing work and consume only once that work has succeeded, so a rejected
// booking does not cost the user their verification pass.
func ValidateVerificationToken(ctx context.Context, token string, userID uint) error {
	tokenKey := fmt.Sprintf("verification:token:%s", token)
	sessionID, err := RedisClient.Get(ctx, tokenKey).Result()
	if err == redis.Nil {
		return ErrSessionNotFound
	}
	if err != nil {
		return err
	}

	session, err := GetVerificationSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.UserID != userID || !session.Verified() {
		return ErrSessionNotFound
	}
	return nil
}

// ConsumeVerificationToken validates and burns a completion token for a user.
// The token is one-shot: a second booking needs a fresh verification pass.
func ConsumeVerificationToken(ctx context.Context, token string, userID uint) error {
	tokenKey := fmt.Sprintf("verification:token:%s", token)
	sessionID, err := RedisClient.GetDel(ctx, tokenKey).Result()
	if err == redis.Nil {
		return ErrSessionNotFound
	}
	if err != nil {
		return err
	}

	session, err := GetVerificationSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.UserID != userID || !session.Verified() {
		return ErrSessionNotFound
	}

	return DeleteVerificationSession(ctx, sessionID)
}

// CacheAvailabilitySnapshot stores a computed availability snapshot briefly,
// mirroring the 30s staleness window clients used to apply.
func CacheAvailabilitySnapshot(ctx context.Context, bikeID uint, snapshot interface{}) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("bike:availability:%d", bikeID)
	return RedisClient.Set(ctx, key, data, availabilitySnapshotTTL).Err()
}

// GetCachedAvailabilitySnapshot retrieves a cached snapshot; redis.Nil maps
// to (false, nil) so callers fall through to the datastore.
func GetCachedAvailabilitySnapshot(ctx context.Context, bikeID uint, out interface{}) (bool, error) {
	key := fmt.Sprintf("bike:availability:%d", bikeID)
	data, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, err
	}
	return true, nil
}
