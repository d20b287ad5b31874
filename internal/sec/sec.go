// Package sec provides the authentication primitives for the admin API:
// password hashing, session lifecycle, and the request gate.
//
// # Authentication
//
// Admin credentials are verified against salted PBKDF2 hashes stored in the
// database. A successful login issues a session whose identifier is handed to
// the client as an httpOnly cookie and treated as a bearer token; every
// authenticated request re-reads the session from the store, so no process
// holds session state in memory.
//
// # Components
//
//   - [GenerateSalt], [HashPassword], [VerifyPassword]: key-derivation utilities
//   - [Service]: login/logout/session-validation orchestration
//   - [RequireSession]: Echo middleware gating mutating routes
//   - [SessionFromContext], [SessionCookie], [ClearSessionCookie]: request plumbing
package sec
