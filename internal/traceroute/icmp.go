// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"encoding/binary"
	"errors"
	"net"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

// hopProber sends a single echo request with a given TTL and waits for the
// matching reply.
//
//go:generate go tool moq -out hopprober_moq.go . hopProber
type hopProber interface {
	// probe returns a reply of kind replyNone if nothing matching arrived
	// within timeout. Errors are reserved for failures of the socket itself.
	probe(ctx context.Context, dst net.IP, ttl int, timeout time.Duration) (hopReply, error)
	Close() error
}

// replyKind classifies what came back for a probe.
type replyKind int

const (
	// replyNone means no matching reply arrived in time.
	replyNone replyKind = iota
	// replyTimeExceeded is a router dropping the probe because its TTL expired.
	replyTimeExceeded
	// replyEcho is the echo reply of the destination.
	replyEcho
	// replyOther is any other ICMP error for the probe, e.g. destination unreachable.
	replyOther
)

// hopReply represents a received reply for one probe.
type hopReply struct {
	kind replyKind
	// addr is the address of the device that answered the probe.
	addr net.IP
}

const (
	// mtuSize is the size of the receive buffers.
	mtuSize = 1500
	// echoPayload is carried by every echo request.
	echoPayload = "Tracing route..."
	// echoHeaderLen is the length of the ICMP echo header.
	echoHeaderLen = 8
	// ihlMask extracts the header length in 4-byte words from the first byte of an IPv4 header.
	ihlMask = 0x0F
)

// newEchoRequest encodes an echo request with the given identifier and sequence number.
func newEchoRequest(id, seq int) ([]byte, error) {
	msg := icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{
			ID:   id,
			Seq:  seq,
			Data: []byte(echoPayload),
		},
	}
	return msg.Marshal(nil)
}

// classify parses an ICMP message received from src and reports whether it
// answers the echo request with the given identifier and sequence number.
// The message must not include the outer IP header.
func classify(src net.IP, b []byte, id, seq int) (hopReply, bool) {
	msg, err := icmp.ParseMessage(ipv4.ICMPTypeEcho.Protocol(), b)
	if err != nil {
		return hopReply{}, false
	}

	switch body := msg.Body.(type) {
	case *icmp.Echo:
		if msg.Type != ipv4.ICMPTypeEchoReply || body.ID != id || body.Seq != seq {
			return hopReply{}, false
		}
		return hopReply{kind: replyEcho, addr: src}, true
	case *icmp.TimeExceeded:
		if !matchesQuotedEcho(body.Data, id, seq) {
			return hopReply{}, false
		}
		return hopReply{kind: replyTimeExceeded, addr: src}, true
	case *icmp.DstUnreach:
		if !matchesQuotedEcho(body.Data, id, seq) {
			return hopReply{}, false
		}
		return hopReply{kind: replyOther, addr: src}, true
	default:
		return hopReply{}, false
	}
}

// matchesQuotedEcho checks the original datagram quoted by an ICMP error:
// the IPv4 header of the probe followed by at least the echo header.
func matchesQuotedEcho(data []byte, id, seq int) bool {
	if len(data) < ipv4.HeaderLen {
		return false
	}
	hl := int(data[0]&ihlMask) * 4
	if hl < ipv4.HeaderLen || len(data) < hl+echoHeaderLen {
		return false
	}
	echo := data[hl : hl+echoHeaderLen]
	if echo[0] != byte(ipv4.ICMPTypeEcho) {
		return false
	}
	return int(binary.BigEndian.Uint16(echo[4:6])) == id&0xffff &&
		int(binary.BigEndian.Uint16(echo[6:8])) == seq&0xffff
}

// readDeadline returns the earlier of now+timeout and the deadline of ctx.
func readDeadline(ctx context.Context, timeout time.Duration) time.Time {
	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		return d
	}
	return deadline
}

// isTimeout reports whether err is a network timeout.
func isTimeout(err error) bool {
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
