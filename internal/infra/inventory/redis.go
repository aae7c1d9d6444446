package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pousada/internal/app/policies"
	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
)

// keep holds around for a while after the night has passed
const slotGrace = 72 * time.Hour

// KEYS[1] is the reservation's hold list, KEYS[2..] one slot per requested unit.
// ARGV carries capacity and expire-at for each slot, in order.
var holdScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[1]) == 1 then
		return {1}
	end
	local need = {}
	local cap = {}
	for i = 2, #KEYS do
		local k = KEYS[i]
		need[k] = (need[k] or 0) + 1
		cap[k] = tonumber(ARGV[(i - 2) * 2 + 1])
	end
	for k, n in pairs(need) do
		local held = tonumber(redis.call('GET', k) or '0')
		if held + n > cap[k] then
			return {2, k}
		end
	end
	local last = 0
	for i = 2, #KEYS do
		local k = KEYS[i]
		local expireAt = tonumber(ARGV[(i - 2) * 2 + 2])
		redis.call('INCR', k)
		redis.call('EXPIREAT', k, expireAt)
		redis.call('RPUSH', KEYS[1], k)
		if expireAt > last then last = expireAt end
	end
	redis.call('EXPIREAT', KEYS[1], last)
	return {0}
`)

var releaseScript = redis.NewScript(`
	local keys = redis.call('LRANGE', KEYS[1], 0, -1)
	for _, k in ipairs(keys) do
		local left = redis.call('DECR', k)
		if left <= 0 then
			redis.call('DEL', k)
		end
	end
	redis.call('DEL', KEYS[1])
	return #keys
`)

// RedisLedger keeps per-night counters in Redis and checks all of a reservation's nights in one script.
type RedisLedger struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisLedger(client redis.UniversalClient, prefix string) *RedisLedger {
	if prefix == "" {
		prefix = "pousada"
	}
	return &RedisLedger{client: client, prefix: prefix}
}

func (l *RedisLedger) Hold(ctx context.Context, reservationID string, holds []policies.UnitHold) error {
	if len(holds) == 0 {
		return nil
	}
	keys := make([]string, 0, len(holds)+1)
	args := make([]any, 0, len(holds)*2)
	keys = append(keys, l.reservationKey(reservationID))
	for _, h := range holds {
		keys = append(keys, l.slotKey(h.RoomID, h.Date))
		args = append(args, h.Capacity, h.Date.Time().Add(slotGrace).Unix())
	}
	res, err := holdScript.Run(ctx, l.client, keys, args...).Slice()
	if err != nil {
		return fmt.Errorf("inventory: hold script: %w", err)
	}
	if len(res) == 0 {
		return errors.New("inventory: empty hold script reply")
	}
	code, _ := res[0].(int64)
	switch code {
	case 0:
		return nil
	case 1:
		return policies.ErrHoldExists
	default:
		key := ""
		if len(res) > 1 {
			key, _ = res[1].(string)
		}
		return fmt.Errorf("%w: %s", policies.ErrInsufficientInventory, key)
	}
}

func (l *RedisLedger) Release(ctx context.Context, reservationID string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.reservationKey(reservationID)}).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("inventory: release script: %w", err)
	}
	return nil
}

func (l *RedisLedger) Held(ctx context.Context, roomID rooms.RoomID, date daterange.Date) (int, error) {
	n, err := l.client.Get(ctx, l.slotKey(roomID, date)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// Ping is used by the readiness probe.
func (l *RedisLedger) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Keys share the {inv} hash tag so a cluster keeps one reservation's slots together.
func (l *RedisLedger) slotKey(roomID rooms.RoomID, date daterange.Date) string {
	return fmt.Sprintf("%s:{inv}:slot:%s:%s", l.prefix, roomID, date)
}

func (l *RedisLedger) reservationKey(id string) string {
	return fmt.Sprintf("%s:{inv}:res:%s", l.prefix, id)
}

var _ policies.InventoryLedger = (*RedisLedger)(nil)
