package inbox_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"

	"github.com/vango-dev/techcorp/pkg/inbox"
)

func sample(id string, at time.Time) *inbox.Inquiry {
	return &inbox.Inquiry{
		ID:              id,
		Name:            "张三",
		Email:           "zhang@example.com",
		Phone:           "13800138000",
		Company:         "Example Ltd",
		Subject:         "技术支持",
		Message:         "请联系我了解更多产品信息",
		PrivacyAccepted: true,
		SubmittedAt:     at,
	}
}

// =============================================================================
// Prepare
// =============================================================================

func TestPrepare_StripsMarkupAndFillsIdentity(t *testing.T) {
	got := inbox.Prepare(inbox.Inquiry{
		Name:    "  <b>Li</b> Lei ",
		Email:   "li@example.com",
		Subject: "商务合作",
		Message: "<a href=\"x\">hello</a> & welcome",
	})

	if got.Name != "Li Lei" {
		t.Errorf("Name = %q, want %q", got.Name, "Li Lei")
	}
	if got.Message != "hello & welcome" {
		t.Errorf("Message = %q, want %q", got.Message, "hello & welcome")
	}
	if got.ID == "" {
		t.Error("expected an id to be assigned")
	}
	if got.SubmittedAt.IsZero() {
		t.Error("expected SubmittedAt to be set")
	}
	if got.SubmittedAt.Location() != time.UTC {
		t.Errorf("SubmittedAt location = %v, want UTC", got.SubmittedAt.Location())
	}
}

func TestPrepare_KeepsExistingIdentity(t *testing.T) {
	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	got := inbox.Prepare(inbox.Inquiry{ID: "fixed", SubmittedAt: at})
	if got.ID != "fixed" || !got.SubmittedAt.Equal(at) {
		t.Errorf("identity changed: %q %v", got.ID, got.SubmittedAt)
	}
}

func TestPrepare_DoesNotMutateInput(t *testing.T) {
	in := inbox.Inquiry{Name: "<i>x</i>"}
	_ = inbox.Prepare(in)
	if in.Name != "<i>x</i>" || in.ID != "" {
		t.Errorf("input mutated: %+v", in)
	}
}

func TestStripMarkup_Empty(t *testing.T) {
	if got := inbox.StripMarkup("   "); got != "" {
		t.Errorf("StripMarkup(blank) = %q", got)
	}
}

// =============================================================================
// MemorySink / LogSink
// =============================================================================

func TestMemorySink_DeliverAndList(t *testing.T) {
	ctx := context.Background()
	sink := inbox.NewMemorySink()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "a"} {
		if err := sink.Deliver(ctx, sample(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Deliver(%s): %v", id, err)
		}
	}

	if sink.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (duplicate id ignored)", sink.Len())
	}
	list, _ := sink.List(ctx)
	ids := []string{list[0].ID, list[1].ID}
	if diff := cmp.Diff([]string{"a", "b"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}

	if _, err := sink.Get("missing"); !errors.Is(err, inbox.ErrNotFound) {
		t.Errorf("Get(missing) err = %v, want ErrNotFound", err)
	}
}

func TestMemorySink_RejectsInvalid(t *testing.T) {
	sink := inbox.NewMemorySink()
	err := sink.Deliver(context.Background(), &inbox.Inquiry{})
	if !inbox.IsPermanent(err) {
		t.Errorf("expected permanent error, got %v", err)
	}
	if err := sink.Deliver(context.Background(), nil); !inbox.IsPermanent(err) {
		t.Errorf("expected permanent error for nil, got %v", err)
	}
}

func TestLogSink_Deliver(t *testing.T) {
	sink := inbox.NewLogSink(nil)
	if err := sink.Deliver(context.Background(), sample("x", time.Now())); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
}

// =============================================================================
// DiskSink
// =============================================================================

func TestDiskSink_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "inbox")
	sink, err := inbox.NewDiskSink(dir)
	if err != nil {
		t.Fatalf("NewDiskSink: %v", err)
	}

	ctx := context.Background()
	later := sample("later", time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC))
	earlier := sample("earlier", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	for _, inq := range []*inbox.Inquiry{later, earlier} {
		if err := sink.Deliver(ctx, inq); err != nil {
			t.Fatalf("Deliver: %v", err)
		}
	}

	got, err := sink.Get("earlier")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(earlier, got); diff != "" {
		t.Errorf("inquiry mismatch (-want +got):\n%s", diff)
	}

	list, err := sink.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "earlier" || list[1].ID != "later" {
		t.Errorf("List order wrong: %v", list)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".inquiry-") {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestDiskSink_JSONKeys(t *testing.T) {
	dir := t.TempDir()
	sink, _ := inbox.NewDiskSink(dir)
	if err := sink.Deliver(context.Background(), sample("k", time.Now().UTC())); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "k.json"))
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"privacy_accepted"`, `"submitted_at"`, `"subject"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("missing key %s in %s", key, data)
		}
	}
}

func TestDiskSink_RejectsPathInID(t *testing.T) {
	sink, _ := inbox.NewDiskSink(t.TempDir())
	err := sink.Deliver(context.Background(), sample("../escape", time.Now()))
	if !inbox.IsPermanent(err) {
		t.Errorf("expected permanent error, got %v", err)
	}
}

func TestDiskSink_GetMissing(t *testing.T) {
	sink, _ := inbox.NewDiskSink(t.TempDir())
	if _, err := sink.Get("nope"); !errors.Is(err, inbox.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// =============================================================================
// RedisSink
// =============================================================================

func TestRedisSink_DeliverAndList(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	sink := inbox.NewRedisSink(client, "site", time.Hour)
	if err := sink.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	first := sample("one", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	second := sample("two", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	for _, inq := range []*inbox.Inquiry{first, second, first} {
		if err := sink.Deliver(ctx, inq); err != nil {
			t.Fatalf("Deliver: %v", err)
		}
	}

	if !mr.Exists("site:inquiry:one") {
		t.Error("expected value key site:inquiry:one")
	}
	ids, err := mr.List("site:inquiries")
	if err != nil {
		t.Fatalf("List key: %v", err)
	}
	if diff := cmp.Diff([]string{"one", "two"}, ids); diff != "" {
		t.Errorf("index mismatch (-want +got):\n%s", diff)
	}
	if ttl := mr.TTL("site:inquiry:two"); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}

	list, err := sink.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if diff := cmp.Diff([]*inbox.Inquiry{first, second}, list); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}

	got, err := sink.Get(ctx, "two")
	if err != nil || got.Subject != "技术支持" {
		t.Errorf("Get(two) = %+v, %v", got, err)
	}
	if _, err := sink.Get(ctx, "zzz"); !errors.Is(err, inbox.ErrNotFound) {
		t.Errorf("Get(missing) err = %v", err)
	}
}

func TestRedisSink_SkipsExpiredEntries(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	sink := inbox.NewRedisSink(client, "", time.Minute)
	_ = sink.Deliver(ctx, sample("gone", time.Now().UTC()))
	mr.FastForward(2 * time.Minute)

	list, err := sink.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected expired inquiry to be skipped, got %d", len(list))
	}
}

func TestRedisSink_ConnectionFailureIsRetryable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	err := inbox.NewRedisSink(client, "x", 0).Deliver(context.Background(), sample("a", time.Now()))
	if err == nil {
		t.Fatal("expected error from closed server")
	}
	if inbox.IsPermanent(err) {
		t.Error("connection errors must not be permanent")
	}
}

// =============================================================================
// S3Sink
// =============================================================================

type fakeS3 struct {
	mu     sync.Mutex
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink_Deliver(t *testing.T) {
	fake := &fakeS3{}
	sink := inbox.NewS3Sink(fake, "bucket", "/inquiries/")
	inq := sample("abc", time.Date(2024, 7, 9, 23, 0, 0, 0, time.UTC))

	if err := sink.Deliver(context.Background(), inq); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if len(fake.inputs) != 1 {
		t.Fatalf("PutObject calls = %d, want 1", len(fake.inputs))
	}
	in := fake.inputs[0]
	if *in.Bucket != "bucket" {
		t.Errorf("Bucket = %s", *in.Bucket)
	}
	if *in.Key != "inquiries/2024-07-09/abc.json" {
		t.Errorf("Key = %s", *in.Key)
	}
	if *in.ContentType != "application/json" {
		t.Errorf("ContentType = %s", *in.ContentType)
	}
	if !strings.Contains(string(fake.bodies[0]), `"id":"abc"`) {
		t.Errorf("body missing id: %s", fake.bodies[0])
	}
}

func TestS3Sink_KeyWithoutPrefix(t *testing.T) {
	sink := inbox.NewS3Sink(&fakeS3{}, "b", "")
	got := sink.Key(sample("id1", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
	if got != "2023-12-31/id1.json" {
		t.Errorf("Key = %s", got)
	}
}

func TestS3Sink_PropagatesError(t *testing.T) {
	fake := &fakeS3{err: errors.New("boom")}
	err := inbox.NewS3Sink(fake, "b", "p").Deliver(context.Background(), sample("x", time.Now()))
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("err = %v, want wrapped boom", err)
	}
}

// =============================================================================
// Retrying / Traced / Open
// =============================================================================

func TestRetrying_RecoversFromTransientFailures(t *testing.T) {
	var calls atomic.Int32
	flaky := inbox.SinkFunc(func(ctx context.Context, inq *inbox.Inquiry) error {
		if calls.Add(1) < 3 {
			return errors.New("temporarily unavailable")
		}
		return nil
	})

	sink := inbox.Retrying(flaky, 3, time.Millisecond)
	if err := sink.Deliver(context.Background(), sample("r", time.Now())); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestRetrying_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	down := inbox.SinkFunc(func(ctx context.Context, inq *inbox.Inquiry) error {
		calls.Add(1)
		return errors.New("down")
	})

	err := inbox.Retrying(down, 2, time.Millisecond).Deliver(context.Background(), sample("r", time.Now()))
	if err == nil || err.Error() != "down" {
		t.Errorf("err = %v, want down", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3 (1 + 2 retries)", calls.Load())
	}
}

func TestRetrying_StopsOnPermanent(t *testing.T) {
	var calls atomic.Int32
	bad := inbox.SinkFunc(func(ctx context.Context, inq *inbox.Inquiry) error {
		calls.Add(1)
		return inbox.Permanent(errors.New("rejected"))
	})

	err := inbox.Retrying(bad, 5, time.Millisecond).Deliver(context.Background(), sample("r", time.Now()))
	if !inbox.IsPermanent(err) {
		t.Errorf("err = %v, want permanent", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestRetrying_ZeroRetriesReturnsSink(t *testing.T) {
	mem := inbox.NewMemorySink()
	if got := inbox.Retrying(mem, 0, time.Second); got != inbox.Sink(mem) {
		t.Error("expected the sink to be returned unwrapped")
	}
}

func TestTraced_PassesThrough(t *testing.T) {
	mem := inbox.NewMemorySink()
	sink := inbox.Traced(mem)
	if err := sink.Deliver(context.Background(), sample("t", time.Now())); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if mem.Len() != 1 {
		t.Errorf("Len = %d, want 1", mem.Len())
	}

	failing := inbox.Traced(inbox.SinkFunc(func(context.Context, *inbox.Inquiry) error {
		return errors.New("nope")
	}))
	if err := failing.Deliver(context.Background(), sample("t", time.Now())); err == nil {
		t.Error("expected error to propagate")
	}
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	sink, closer, err := inbox.Open(ctx, inbox.Options{Driver: inbox.DriverMemory, Retries: 2, Tracing: true})
	if err != nil {
		t.Fatalf("Open(memory): %v", err)
	}
	defer closer.Close()
	if _, ok := inbox.AsLister(sink); !ok {
		t.Error("memory sink should be listable through decorators")
	}

	logSink, _, err := inbox.Open(ctx, inbox.Options{})
	if err != nil {
		t.Fatalf("Open(default): %v", err)
	}
	if _, ok := inbox.AsLister(logSink); ok {
		t.Error("log sink should not be listable")
	}

	if _, _, err := inbox.Open(ctx, inbox.Options{Driver: "carrier-pigeon"}); err == nil {
		t.Error("expected error for unknown driver")
	}
	if _, _, err := inbox.Open(ctx, inbox.Options{Driver: inbox.DriverS3}); err == nil {
		t.Error("expected error for s3 without bucket")
	}
	if _, _, err := inbox.Open(ctx, inbox.Options{Driver: inbox.DriverDisk}); err == nil {
		t.Error("expected error for disk without dir")
	}
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	sink, closer, err := inbox.Open(ctx, inbox.Options{Driver: inbox.DriverRedis, RedisAddr: mr.Addr(), RedisPrefix: "t"})
	if err != nil {
		t.Fatalf("Open(redis): %v", err)
	}
	defer closer.Close()

	if err := sink.Deliver(ctx, sample("r1", time.Now().UTC())); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if !mr.Exists("t:inquiry:r1") {
		t.Error("inquiry not stored")
	}
}
