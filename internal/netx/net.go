// Package netx classifies errors returned by http.Client.Do.
package netx

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"syscall"
)

// Failure classes reported by Reason.
const (
	ReasonCanceled = "canceled"
	ReasonTimeout  = "timeout"
	ReasonDNS      = "dns"
	ReasonRefused  = "refused"
	ReasonReset    = "reset"
	ReasonClosed   = "closed"
	ReasonTLS      = "tls"
	ReasonOther    = "other"
)

// NoResponse reports whether err, returned by http.Client.Do, means the
// request went unanswered. That holds for every failure except a context the
// caller cancelled: proxy, TLS and RoundTripper errors count as well as
// dial failures.
func NoResponse(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled)
}

// Reason names the class of a transport failure for logs.
func Reason(err error) string {
	if errors.Is(err, context.Canceled) {
		return ReasonCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ReasonDNS
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return ReasonRefused
	}
	if errors.Is(err, syscall.ECONNRESET) {
		return ReasonReset
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return ReasonClosed
	}

	var (
		recordErr tls.RecordHeaderError
		verifyErr *tls.CertificateVerificationError
		authErr   x509.UnknownAuthorityError
		hostErr   x509.HostnameError
		certErr   x509.CertificateInvalidError
	)
	if errors.As(err, &recordErr) || errors.As(err, &verifyErr) ||
		errors.As(err, &authErr) || errors.As(err, &hostErr) || errors.As(err, &certErr) {
		return ReasonTLS
	}
	return ReasonOther
}
