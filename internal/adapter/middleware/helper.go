package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func nowUTC() time.Time { return time.Now().UTC() }

func buildKey(method, path, actorID, key string) string {
	return "idemp:labinv:" + strings.ToLower(method) + ":" + path + ":" + actorID + ":" + key
}

var reKey = regexp.MustCompile(`^[A-Za-z0-9_:\-]{8,128}$`)

func validKey(k string) bool { return reKey.MatchString(k) }

// ---- Redis helpers ----
func provisionalSet(ctx context.Context, rdb redis.UniversalClient, key string, entry idempEntry) (bool, error) {
	payload, _ := json.Marshal(entry)
	return rdb.SetNX(ctx, key, payload, provisionalLockTTL).Result()
}

// claim takes the provisional lock on key or returns the current holder's
// entry. A holder that expires between SETNX and GET frees the slot, so the
// lock is tried once more before giving up with redis.Nil.
func claim(ctx context.Context, rdb redis.UniversalClient, key string, entry idempEntry) (bool, idempEntry, error) {
	for attempt := 0; ; attempt++ {
		ok, err := provisionalSet(ctx, rdb, key, entry)
		if err != nil || ok {
			return ok, idempEntry{}, err
		}
		cur, err := loadEntry(ctx, rdb, key)
		if errors.Is(err, redis.Nil) && attempt == 0 {
			continue
		}
		return false, cur, err
	}
}

func loadEntry(ctx context.Context, rdb redis.UniversalClient, key string) (idempEntry, error) {
	var e idempEntry
	v, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	err = json.Unmarshal(v, &e)
	return e, err
}

func saveFinal(ctx context.Context, rdb redis.UniversalClient, key string, entry idempEntry, ttl time.Duration) error {
	payload, _ := json.Marshal(entry)
	return rdb.Set(ctx, key, payload, ttl).Err()
}

func release(ctx context.Context, rdb redis.UniversalClient, key string) error {
	return rdb.Del(ctx, key).Err()
}
