package handler

import (
    "context"
    "log"

    "github.com/redis/go-redis/v9"
)

// Revalidator drops cached public responses after an admin mutation so
// visitors see fresh content on the next request. A nil receiver or a
// missing Redis client turns every call into a no-op; cache
// invalidation failures are logged, never surfaced to the caller.
type Revalidator struct {
    RDB    *redis.Client
    Prefix string
}

// Revalidate deletes every cache entry under the configured prefix.
func (r *Revalidator) Revalidate(ctx context.Context) {
    if r == nil || r.RDB == nil {
        return
    }
    var cursor uint64
    for {
        keys, next, err := r.RDB.Scan(ctx, cursor, r.Prefix+":*", 100).Result()
        if err != nil {
            log.Printf("revalidate: scan failed: %v", err)
            return
        }
        if len(keys) > 0 {
            if err := r.RDB.Del(ctx, keys...).Err(); err != nil {
                log.Printf("revalidate: delete failed: %v", err)
                return
            }
        }
        cursor = next
        if cursor == 0 {
            return
        }
    }
}
