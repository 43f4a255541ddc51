// Package eventsink forwards navigator lifecycle events to external
// consumers.
//
// Every [navigator.Event] is flattened into an [Envelope] carrying a unique
// id, a timestamp and the ids of the nodes involved. Envelopes are handed to
// a [Sink]: [LogSink] writes them to a structured logger, [RedisSink]
// publishes them on a Redis channel (and optionally a stream), [Recorder]
// keeps them in memory and [Multi] fans out to several sinks.
//
// [Attach] subscribes a sink to a dispatcher. Publishing happens on a
// background goroutine so a slow sink never stalls navigation; envelopes are
// dropped when the queue is full.
//
//	fwd := eventsink.Attach(nav.Events(), "living-room", eventsink.NewLogSink(logger))
//	defer fwd.Close()
package eventsink
