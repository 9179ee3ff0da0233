// Package verify decides whether a candidate password decrypts a Fernet token.
//
// The key schedule is PBKDF2-HMAC-SHA256 over the candidate's UTF-8 bytes and
// the target salt, producing 32 bytes that are URL-safe base64 encoded into a
// Fernet key. A wrong candidate fails Fernet's HMAC check; that failure is an
// ordinary "no match" outcome, never an error.
//
// Seal and NewSalt build the other side of the scheme, so a controlled target
// with a known password can be produced for sanity checks.
package verify
