// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package traceroute

import (
	"encoding/binary"
	"net"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/sys/unix"
)

// recvErrControl builds an IP_RECVERR control message the way the kernel
// queues it: a sock_extended_err followed by the offender's sockaddr_in.
func recvErrControl(origin, typ, code uint8, offender net.IP) []byte {
	data := make([]byte, minExtendedErrSize+unix.SizeofSockaddrInet4)
	binary.LittleEndian.PutUint32(data[0:4], uint32(unix.EHOSTUNREACH))
	data[4] = origin
	data[5] = typ
	data[6] = code
	if offender != nil {
		binary.LittleEndian.PutUint16(data[minExtendedErrSize:], unix.AF_INET)
		copy(data[offenderOffset:], offender.To4())
	}

	oob := make([]byte, unix.CmsgSpace(len(data)))
	h := (*unix.Cmsghdr)(unsafe.Pointer(&oob[0])) // #nosec G103 // building a control message for the parser
	h.Level = unix.SOL_IP
	h.Type = unix.IP_RECVERR
	h.SetLen(unix.CmsgLen(len(data)))
	copy(oob[unix.CmsgLen(0):], data)
	return oob
}

func TestParseErrQueue(t *testing.T) {
	router := net.IPv4(10, 0, 0, 254)
	probe, err := newEchoRequest(0, 3)
	require.NoError(t, err)

	tests := []struct {
		name     string
		data     []byte
		oob      []byte
		wantOk   bool
		wantKind replyKind
		wantAddr net.IP
	}{
		{
			name:     "time exceeded",
			data:     probe,
			oob:      recvErrControl(unix.SO_EE_ORIGIN_ICMP, uint8(ipv4.ICMPTypeTimeExceeded), 0, router),
			wantOk:   true,
			wantKind: replyTimeExceeded,
			wantAddr: router,
		},
		{
			name:     "destination unreachable",
			data:     probe,
			oob:      recvErrControl(unix.SO_EE_ORIGIN_ICMP, uint8(ipv4.ICMPTypeDestinationUnreachable), 1, router),
			wantOk:   true,
			wantKind: replyOther,
			wantAddr: router,
		},
		{
			name:     "local error has no offender",
			data:     probe,
			oob:      recvErrControl(unix.SO_EE_ORIGIN_LOCAL, 0, 0, nil),
			wantOk:   true,
			wantKind: replyOther,
		},
		{
			name: "error for another sequence number",
			data: func() []byte {
				b, _ := newEchoRequest(0, 4)
				return b
			}(),
			oob: recvErrControl(unix.SO_EE_ORIGIN_ICMP, uint8(ipv4.ICMPTypeTimeExceeded), 0, router),
		},
		{
			name: "truncated probe",
			data: probe[:4],
			oob:  recvErrControl(unix.SO_EE_ORIGIN_ICMP, uint8(ipv4.ICMPTypeTimeExceeded), 0, router),
		},
		{
			name: "no control message",
			data: probe,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseErrQueue(tt.data, tt.oob, 3)
			require.Equal(t, tt.wantOk, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantKind, got.kind)
			if tt.wantAddr == nil {
				assert.Nil(t, got.addr)
				return
			}
			assert.True(t, tt.wantAddr.Equal(got.addr), "got %v, want %v", got.addr, tt.wantAddr)
		})
	}
}

func TestParseEchoReply(t *testing.T) {
	src := net.IPv4(192, 0, 2, 10)
	reply, err := (&icmp.Message{
		Type: ipv4.ICMPTypeEchoReply,
		Body: &icmp.Echo{ID: 999, Seq: 12, Data: []byte(echoPayload)},
	}).Marshal(nil)
	require.NoError(t, err)

	got, ok := parseEchoReply(src, reply, 12)
	require.True(t, ok)
	assert.Equal(t, replyEcho, got.kind)
	assert.True(t, src.Equal(got.addr))

	_, ok = parseEchoReply(src, reply, 11)
	assert.False(t, ok)

	request, err := newEchoRequest(999, 12)
	require.NoError(t, err)
	_, ok = parseEchoReply(src, request, 12)
	assert.False(t, ok)
}

func TestNewSockExtendedErr(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    unix.SockExtendedErr
		wantErr bool
	}{
		{
			name: "valid time exceeded",
			data: []byte{
				0x71, 0x00, 0x00, 0x00, // errno EHOSTUNREACH
				unix.SO_EE_ORIGIN_ICMP, 11, 0, 0, // origin, type, code, pad
				0x00, 0x00, 0x00, 0x00, // info
				0x00, 0x00, 0x00, 0x00, // data
			},
			want: unix.SockExtendedErr{Errno: 0x71, Origin: unix.SO_EE_ORIGIN_ICMP, Type: 11},
		},
		{
			name:    "too short",
			data:    make([]byte, minExtendedErrSize-1),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newSockExtendedErr(tt.data)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSockaddrIP(t *testing.T) {
	assert.True(t, net.IPv4(1, 2, 3, 4).Equal(sockaddrIP(&unix.SockaddrInet4{Addr: [4]byte{1, 2, 3, 4}})))
	assert.Nil(t, sockaddrIP(&unix.SockaddrInet6{}))
	assert.Nil(t, sockaddrIP(nil))
}
