// Package inbox delivers contact inquiries to a backing store.
//
// A Sink receives a prepared *Inquiry. The package ships several sinks:
//
//   - LogSink writes the inquiry to the structured log and keeps nothing.
//   - MemorySink keeps inquiries in process memory.
//   - DiskSink writes one JSON document per inquiry into a directory.
//   - RedisSink stores the JSON under a key and appends the id to a list.
//   - S3Sink puts one JSON object per inquiry into a bucket.
//
// Sinks compose: Retrying adds exponential backoff and Traced adds an
// OpenTelemetry span around each delivery.
//
//	sink := inbox.Traced(inbox.Retrying(inbox.NewDiskSink("var/inbox"), 3, 200*time.Millisecond))
//	err := sink.Deliver(ctx, inbox.Prepare(inbox.Inquiry{Name: "Li Lei", ...}))
package inbox
