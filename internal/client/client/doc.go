// Package client contains the client-side building blocks of jobintake.
//
// # Overview
//
// The package provides:
//  1. The careers API contract (see the Client interface): job posting lookup
//     and multipart application submission.
//  2. An HTTP implementation (see HTTPClient) that applies per-call timeouts,
//     attaches an optional bearer token and a per-attempt X-Request-ID, and
//     maps transport failures and non-2xx answers to errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Callers match conditions with errors.Is / errors.As: ErrUnavailable (no
// response obtained, including timeouts), ErrNotFound (unknown job posting),
// ErrMalformedResponse, ErrUnauthorized, and *APIError for any other non-2xx
// answer with the server's message and field annotations.
package client
