// Package traceroute walks the route to a single IPv4 destination by sending
// ICMP echo requests with increasing TTL values.
//
// A trace first resolves its target. Literal addresses are used as they are,
// host names go through forward DNS and the first IPv4 address is taken.
// It then probes TTL 1 up to [Options.MaxTTL], one hop at a time, and
// classifies every reply:
//   - time exceeded or echo reply: the responder becomes a [Hop] with a best
//     effort reverse DNS name; an echo reply ends the trace
//   - anything else, including no reply within [Options.Timeout]: the hop is
//     recorded as timed out and the next TTL is tried
//
// Failures never escape as errors. A target that cannot be resolved yields a
// [Result] with a single diagnostic line and no progress callbacks, and an
// error while probing ends the hop sequence with one diagnostic line.
//
// Probes go out over a raw ICMP socket. Without NET_RAW capabilities the
// client falls back to an unprivileged ICMP datagram socket on Linux and reads
// the time exceeded messages from the socket error queue.
//
// Typical usage:
//
//	client := traceroute.NewClient()
//	res := client.Trace(ctx, "example.com", &traceroute.Options{MaxTTL: 30, Timeout: 3 * time.Second},
//		func(ttl, maxTTL int) { fmt.Printf("%d/%d\n", ttl, maxTTL) })
//	for _, line := range res.Lines() {
//		fmt.Println(line)
//	}
package traceroute
