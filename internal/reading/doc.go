// Package reading is the core of ReadDaily: streak tracking, daily article
// selection and the reading-history rules over a user profile.
//
// Everything here is pure and synchronous. The current date is always passed
// in by the caller, which lets the server (PostgreSQL, server time zone) and
// the CLI in local mode (SQLite, local clock) share one implementation.
package reading
