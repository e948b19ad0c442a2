// Package auth provides pluggable authentication and rate limiting for the
// sort API.
//
// Authentication uses a chain-of-responsibility pattern with three-outcome
// voting: each authenticator returns Yes (identity found), No (credentials
// invalid), or Abstain (can't handle). A configurable default voter decides
// when all authenticators abstain.
//
// Auth is implemented as HTTP middleware in front of the protected route
// prefixes, keeping it decoupled from the sort engine. Health, metrics,
// static assets and CORS preflights pass through untouched.
package auth
