// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/telekom/lanscan/internal/logger"
	"golang.org/x/net/icmp"
)

var _ hopProber = (*rawProber)(nil)

// rawProber sends echo requests over a raw ICMP socket.
// It requires NET_RAW capabilities to be created successfully.
type rawProber struct {
	conn *icmp.PacketConn
	// id is the echo identifier that tells our replies apart from those of
	// other processes reading the same ICMP traffic.
	id  int
	buf []byte
}

// newRawProber opens a raw ICMP socket. The returned error matches
// [os.ErrPermission] if the process lacks NET_RAW capabilities.
func newRawProber() (*rawProber, error) {
	conn, err := icmp.ListenPacket("ip4:icmp", "0.0.0.0")
	if err != nil {
		return nil, fmt.Errorf("failed to open raw ICMP socket: %w", err)
	}
	return &rawProber{
		conn: conn,
		id:   os.Getpid() & 0xffff,
		buf:  make([]byte, mtuSize),
	}, nil
}

// probe sends one echo request with the given TTL and reads until the
// matching reply arrives or timeout is exceeded.
func (p *rawProber) probe(ctx context.Context, dst net.IP, ttl int, timeout time.Duration) (hopReply, error) {
	log := logger.FromContext(ctx)
	if err := p.conn.IPv4PacketConn().SetTTL(ttl); err != nil {
		return hopReply{}, fmt.Errorf("failed to set TTL: %w", err)
	}

	b, err := newEchoRequest(p.id, ttl)
	if err != nil {
		return hopReply{}, fmt.Errorf("failed to encode echo request: %w", err)
	}
	if _, err = p.conn.WriteTo(b, &net.IPAddr{IP: dst}); err != nil {
		return hopReply{}, fmt.Errorf("failed to send echo request: %w", err)
	}

	if err = p.conn.SetReadDeadline(readDeadline(ctx, timeout)); err != nil {
		return hopReply{}, fmt.Errorf("failed to set read deadline: %w", err)
	}
	// Unblock the read as soon as ctx is canceled.
	stop := context.AfterFunc(ctx, func() { _ = p.conn.SetReadDeadline(time.Now()) })
	defer stop()

	for {
		n, src, err := p.conn.ReadFrom(p.buf)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return hopReply{}, ctxErr
			}
			if isTimeout(err) {
				log.DebugContext(ctx, "No reply received", "ttl", ttl)
				return hopReply{kind: replyNone}, nil
			}
			return hopReply{}, fmt.Errorf("failed to read from ICMP socket: %w", err)
		}

		reply, ok := classify(ipFromAddr(src), p.buf[:n], p.id, ttl)
		if !ok {
			log.DebugContext(ctx, "Ignoring unrelated ICMP message", "from", src)
			continue
		}
		if reply.kind == replyEcho && !reply.addr.Equal(dst) {
			continue
		}
		return reply, nil
	}
}

// Close closes the ICMP socket.
func (p *rawProber) Close() error {
	return p.conn.Close()
}

// newHopProber opens a raw ICMP socket and falls back to an unprivileged
// datagram socket if raw sockets are not permitted.
func newHopProber(ctx context.Context) (hopProber, error) {
	log := logger.FromContext(ctx)
	raw, err := newRawProber()
	if err == nil {
		return raw, nil
	}
	if !errors.Is(err, os.ErrPermission) {
		return nil, err
	}

	log.DebugContext(ctx, "Raw ICMP socket not permitted, falling back to datagram socket", "error", err)
	dgram, derr := newDgramProber()
	if derr != nil {
		return nil, fmt.Errorf("%w: %w", errICMPNotAvailable, derr)
	}
	return dgram, nil
}
