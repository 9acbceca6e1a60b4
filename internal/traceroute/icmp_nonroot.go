// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package traceroute

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/telekom/lanscan/internal/logger"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/sys/unix"
)

var _ hopProber = (*dgramProber)(nil)

// dgramProber sends echo requests over an unprivileged ICMP datagram socket
// ("ping socket"). The kernel does not pass time exceeded messages to such a
// socket as regular datagrams; with IP_RECVERR enabled they are queued on the
// socket error queue instead.
type dgramProber struct {
	conn    net.PacketConn
	rawConn syscall.RawConn
	buf     []byte
	oob     []byte
}

const (
	// oobBufSize is the size of the out-of-band buffer used for receiving extended error messages.
	oobBufSize = 512
	// offenderOffset is the offset of the offender address within the IP_RECVERR
	// control message: a sock_extended_err followed by sockaddr_in family and port.
	offenderOffset = minExtendedErrSize + 4
)

// newDgramProber opens an ICMP datagram socket with IP_RECVERR enabled.
// Creating it is allowed for unprivileged users in net.ipv4.ping_group_range.
func newDgramProber() (hopProber, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, unix.IPPROTO_ICMP)
	if err != nil {
		return nil, fmt.Errorf("failed to open ICMP datagram socket: %w", os.NewSyscallError("socket", err))
	}

	if err = errors.Join(
		unix.SetsockoptInt(fd, unix.SOL_IP, unix.IP_RECVERR, 1),
		unix.Bind(fd, &unix.SockaddrInet4{}),
	); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("failed to prepare ICMP datagram socket: %w", err)
	}

	// FilePacketConn duplicates the descriptor, the file is closed either way.
	f := os.NewFile(uintptr(fd), "icmp")
	conn, err := net.FilePacketConn(f)
	_ = f.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to wrap ICMP datagram socket: %w", err)
	}

	sc, ok := conn.(syscall.Conn)
	if !ok {
		_ = conn.Close()
		return nil, fmt.Errorf("the provided connection does not implement syscall.Conn: %T", conn)
	}
	rc, err := sc.SyscallConn()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to get RawConn: %w", err)
	}

	return &dgramProber{
		conn:    conn,
		rawConn: rc,
		buf:     make([]byte, mtuSize),
		oob:     make([]byte, oobBufSize),
	}, nil
}

// probe sends one echo request with the given TTL. The kernel owns the echo
// identifier of a datagram socket, so replies are matched by sequence number.
func (p *dgramProber) probe(ctx context.Context, dst net.IP, ttl int, timeout time.Duration) (hopReply, error) {
	log := logger.FromContext(ctx)
	var opErr error
	if err := p.rawConn.Control(func(fd uintptr) {
		opErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_IP, unix.IP_TTL, ttl) // #nosec G115 // fd comes from the runtime
	}); err != nil {
		return hopReply{}, fmt.Errorf("failed to access socket: %w", err)
	}
	if opErr != nil {
		return hopReply{}, fmt.Errorf("failed to set TTL: %w", opErr)
	}

	b, err := newEchoRequest(0, ttl)
	if err != nil {
		return hopReply{}, fmt.Errorf("failed to encode echo request: %w", err)
	}
	if _, err = p.conn.WriteTo(b, &net.UDPAddr{IP: dst}); err != nil {
		return hopReply{}, fmt.Errorf("failed to send echo request: %w", err)
	}

	if err = p.conn.SetReadDeadline(readDeadline(ctx, timeout)); err != nil {
		return hopReply{}, fmt.Errorf("failed to set read deadline: %w", err)
	}
	stop := context.AfterFunc(ctx, func() { _ = p.conn.SetReadDeadline(time.Now()) })
	defer stop()

	for {
		var (
			reply   hopReply
			matched bool
		)
		opErr = nil
		err = p.rawConn.Read(func(fd uintptr) bool {
			reply, matched, opErr = p.recv(int(fd), ttl) // #nosec G115 // fd comes from the runtime
			if errors.Is(opErr, unix.EAGAIN) {
				// nothing queued yet, wait until the socket becomes readable
				opErr = nil
				return false
			}
			return true
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return hopReply{}, ctxErr
			}
			if isTimeout(err) {
				log.DebugContext(ctx, "No reply received", "ttl", ttl)
				return hopReply{kind: replyNone}, nil
			}
			return hopReply{}, fmt.Errorf("failed to read from raw connection: %w", err)
		}
		if opErr != nil {
			return hopReply{}, fmt.Errorf("failed to receive ICMP message: %w", opErr)
		}
		if matched {
			return reply, nil
		}
		log.DebugContext(ctx, "Ignoring unrelated ICMP message", "ttl", ttl)
	}
}

// recv reads one message, preferring the error queue. It returns
// [unix.EAGAIN] if neither the error queue nor the receive queue hold data.
func (p *dgramProber) recv(fd, seq int) (hopReply, bool, error) {
	n, oobn, _, _, err := unix.Recvmsg(fd, p.buf, p.oob, unix.MSG_ERRQUEUE|unix.MSG_DONTWAIT)
	if err == nil {
		reply, ok := parseErrQueue(p.buf[:n], p.oob[:oobn], seq)
		return reply, ok, nil
	}
	if !errors.Is(err, unix.EAGAIN) {
		return hopReply{}, false, err
	}

	n, _, _, from, err := unix.Recvmsg(fd, p.buf, nil, unix.MSG_DONTWAIT)
	if err != nil {
		return hopReply{}, false, err
	}
	reply, ok := parseEchoReply(sockaddrIP(from), p.buf[:n], seq)
	return reply, ok, nil
}

// Close closes the ICMP socket.
func (p *dgramProber) Close() error {
	return p.conn.Close()
}

// parseEchoReply matches an echo reply read from a datagram socket.
func parseEchoReply(src net.IP, b []byte, seq int) (hopReply, bool) {
	msg, err := icmp.ParseMessage(ipv4.ICMPTypeEchoReply.Protocol(), b)
	if err != nil || msg.Type != ipv4.ICMPTypeEchoReply {
		return hopReply{}, false
	}
	echo, ok := msg.Body.(*icmp.Echo)
	if !ok || echo.Seq != seq {
		return hopReply{}, false
	}
	return hopReply{kind: replyEcho, addr: src}, true
}

// parseErrQueue decodes a message read from the error queue. data holds the
// echo request the error refers to, oob the SOL_IP/IP_RECVERR control message.
func parseErrQueue(data, oob []byte, seq int) (hopReply, bool) {
	if len(data) < echoHeaderLen || int(binary.BigEndian.Uint16(data[6:8])) != seq&0xffff {
		return hopReply{}, false
	}

	cms, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return hopReply{}, false
	}

	for _, cm := range cms {
		if cm.Header.Level != unix.SOL_IP || cm.Header.Type != unix.IP_RECVERR {
			continue
		}

		ee, err := newSockExtendedErr(cm.Data)
		if err != nil {
			return hopReply{}, false
		}

		var offender net.IP
		if ee.Origin == unix.SO_EE_ORIGIN_ICMP && len(cm.Data) >= offenderOffset+net.IPv4len {
			offender = net.IPv4(cm.Data[offenderOffset], cm.Data[offenderOffset+1], cm.Data[offenderOffset+2], cm.Data[offenderOffset+3])
		}

		if ee.Origin == unix.SO_EE_ORIGIN_ICMP && ee.Type == uint8(ipv4.ICMPTypeTimeExceeded) {
			return hopReply{kind: replyTimeExceeded, addr: offender}, true
		}
		return hopReply{kind: replyOther, addr: offender}, true
	}

	return hopReply{}, false
}

// minExtendedErrSize is the minimum size of the extended error structure
// as defined in the Linux kernel documentation:
// https://man7.org/linux/man-pages/man7/ip.7.html
const minExtendedErrSize = 16

// newSockExtendedErr converts the first 16 bytes of an OOB buffer into a [unix.SockExtendedErr].
func newSockExtendedErr(data []byte) (unix.SockExtendedErr, error) {
	if len(data) < minExtendedErrSize {
		return unix.SockExtendedErr{}, fmt.Errorf("extended error too short: %d bytes", len(data))
	}

	return unix.SockExtendedErr{
		Errno:  binary.LittleEndian.Uint32(data[0:4]),
		Origin: data[4],
		Type:   data[5],
		Code:   data[6],
		Info:   binary.LittleEndian.Uint32(data[8:12]),
		Data:   binary.LittleEndian.Uint32(data[12:16]),
	}, nil
}

// sockaddrIP extracts the IPv4 address of a socket address.
func sockaddrIP(sa unix.Sockaddr) net.IP {
	if a, ok := sa.(*unix.SockaddrInet4); ok {
		return net.IPv4(a.Addr[0], a.Addr[1], a.Addr[2], a.Addr[3])
	}
	return nil
}
