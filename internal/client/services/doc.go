// Package services contains the application services of the jobintake
// client: job posting lookup, the application submission pipeline and
// access token handling. Services are constructed with their collaborators
// injected and are exposed through interfaces.
package services
