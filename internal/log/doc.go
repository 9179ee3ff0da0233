// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// A dictionary attack that succeeds holds the recovered password, the
// decrypted message and the derived key. SecureHandler masks attributes
// carrying them, by key name (password, plaintext, key, derived_key, ...)
// and by value shape (Fernet keys, hex-encoded raw keys), so verbose logs
// can be shared without leaking the result.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("candidate matched", "password", pw) // password=***REDACTED***
//	slog.SetDefault(logger)
package log
