// Package common contains shared constants and sentinel errors used across
// jobintake components.
package common

// AuthorizationHeaderName carries the applicant access token on outbound
// API requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName identifies one submission attempt for server-side
// correlation. Every retry gets a fresh value.
const RequestIDHeaderName = "X-Request-ID"

// MaxResumeBytes is the largest resume accepted for upload (5 MiB).
const MaxResumeBytes int64 = 5 * 1024 * 1024
