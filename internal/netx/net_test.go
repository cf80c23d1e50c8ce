package netx

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func urlErr(err error) error {
	return &url.Error{Op: "Post", URL: "http://api.local/jobs/1/apply", Err: err}
}

func TestNoResponse(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "cancelled by caller", err: urlErr(context.Canceled), want: false},
		{name: "deadline", err: urlErr(context.DeadlineExceeded), want: true},
		{name: "round tripper failure", err: urlErr(errors.New("network down")), want: true},
		{name: "proxy failure", err: urlErr(errors.New("proxyconnect tcp: connection refused")), want: true},
		{name: "tls failure", err: urlErr(x509.UnknownAuthorityError{}), want: true},
		{name: "dial refused", err: urlErr(&net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NoResponse(tt.err))
		})
	}
}

func TestReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "cancelled", err: urlErr(context.Canceled), want: ReasonCanceled},
		{name: "deadline", err: urlErr(context.DeadlineExceeded), want: ReasonTimeout},
		{name: "client timeout", err: urlErr(fmt.Errorf("%w (Client.Timeout exceeded)", context.DeadlineExceeded)), want: ReasonTimeout},
		{name: "net timeout", err: urlErr(timeoutErr{}), want: ReasonTimeout},
		{name: "dns", err: urlErr(&net.DNSError{Err: "no such host", Name: "api.local"}), want: ReasonDNS},
		{name: "refused", err: urlErr(&net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}), want: ReasonRefused},
		{name: "reset", err: fmt.Errorf("send: %w", syscall.ECONNRESET), want: ReasonReset},
		{name: "eof", err: urlErr(io.EOF), want: ReasonClosed},
		{name: "body cut short", err: io.ErrUnexpectedEOF, want: ReasonClosed},
		{name: "unknown authority", err: urlErr(x509.UnknownAuthorityError{}), want: ReasonTLS},
		{name: "anything else", err: urlErr(errors.New("network down")), want: ReasonOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reason(tt.err))
		})
	}
}

func TestReason_RealRefusedDial(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("cannot listen: %v", err)
	}
	addr := l.Addr().String()
	_ = l.Close()

	_, err = http.Get("http://" + addr + "/")
	assert.True(t, NoResponse(err), "got %v", err)
	assert.Equal(t, ReasonRefused, Reason(err))
}
