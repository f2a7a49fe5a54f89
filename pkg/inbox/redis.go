package inbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSink stores each inquiry as JSON under <prefix>:inquiry:<id> and
// appends the id to the list <prefix>:inquiries.
type RedisSink struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisSink creates a RedisSink. A zero ttl keeps inquiries forever.
func NewRedisSink(client redis.Cmdable, prefix string, ttl time.Duration) *RedisSink {
	if prefix == "" {
		prefix = "techcorp"
	}
	return &RedisSink{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisSink) itemKey(id string) string {
	return fmt.Sprintf("%s:inquiry:%s", s.prefix, id)
}

func (s *RedisSink) listKey() string {
	return s.prefix + ":inquiries"
}

// Deliver implements Sink. The value and the index entry are written in
// one MULTI/EXEC transaction; an id that is already stored is not indexed
// twice.
func (s *RedisSink) Deliver(ctx context.Context, inq *Inquiry) error {
	if err := validate(inq); err != nil {
		return err
	}
	data, err := json.Marshal(inq)
	if err != nil {
		return Permanent(err)
	}

	key := s.itemKey(inq.ID)
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("inbox: redis exists: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, s.ttl)
		if exists == 0 {
			pipe.RPush(ctx, s.listKey(), inq.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("inbox: redis deliver: %w", err)
	}
	return nil
}

// Get reads one stored inquiry.
func (s *RedisSink) Get(ctx context.Context, id string) (*Inquiry, error) {
	raw, err := s.client.Get(ctx, s.itemKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var inq Inquiry
	if err := json.Unmarshal(raw, &inq); err != nil {
		return nil, fmt.Errorf("inbox: decode %s: %w", id, err)
	}
	return &inq, nil
}

// List implements Lister. Index entries whose value expired are skipped.
func (s *RedisSink) List(ctx context.Context) ([]*Inquiry, error) {
	ids, err := s.client.LRange(ctx, s.listKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*Inquiry{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.itemKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*Inquiry, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var inq Inquiry
		if err := json.Unmarshal([]byte(str), &inq); err != nil {
			continue
		}
		out = append(out, &inq)
	}
	return out, nil
}

// Ping checks the connection.
func (s *RedisSink) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
