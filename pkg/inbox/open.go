package inbox

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Driver names accepted by Open.
const (
	DriverLog    = "log"
	DriverMemory = "memory"
	DriverDisk   = "disk"
	DriverRedis  = "redis"
	DriverS3     = "s3"
)

// Options selects and configures a sink.
type Options struct {
	Driver string

	Dir string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	RedisTTL      time.Duration

	S3Bucket    string
	S3Prefix    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool

	Retries uint64
	Backoff time.Duration
	Tracing bool

	Logger *slog.Logger
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var nopCloser = closerFunc(func() error { return nil })

// Open builds the sink named by opts.Driver, wrapped with Retrying and,
// when enabled, Traced. The returned closer releases connections held by
// the sink.
func Open(ctx context.Context, opts Options) (Sink, io.Closer, error) {
	var (
		sink   Sink
		closer io.Closer = nopCloser
	)

	switch opts.Driver {
	case "", DriverLog:
		sink = NewLogSink(opts.Logger)
	case DriverMemory:
		sink = NewMemorySink()
	case DriverDisk:
		d, err := NewDiskSink(opts.Dir)
		if err != nil {
			return nil, nil, err
		}
		sink = d
	case DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		rs := NewRedisSink(client, opts.RedisPrefix, opts.RedisTTL)
		if err := rs.Ping(ctx); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("inbox: redis %s: %w", opts.RedisAddr, err)
		}
		sink = rs
		closer = client
	case DriverS3:
		if opts.S3Bucket == "" {
			return nil, nil, fmt.Errorf("inbox: s3 driver needs a bucket")
		}
		client := NewS3Client(S3ClientOptions{
			Region:    opts.S3Region,
			Endpoint:  opts.S3Endpoint,
			PathStyle: opts.S3PathStyle,
		})
		sink = NewS3Sink(client, opts.S3Bucket, opts.S3Prefix)
	default:
		return nil, nil, fmt.Errorf("inbox: unknown driver %q", opts.Driver)
	}

	sink = Retrying(sink, opts.Retries, opts.Backoff)
	if opts.Tracing {
		sink = Traced(sink)
	}
	return sink, closer, nil
}

// AsLister unwraps decorators until it finds a sink that implements Lister.
func AsLister(s Sink) (Lister, bool) {
	for s != nil {
		if l, ok := s.(Lister); ok {
			return l, true
		}
		u, ok := s.(interface{ Unwrap() Sink })
		if !ok {
			return nil, false
		}
		s = u.Unwrap()
	}
	return nil, false
}
