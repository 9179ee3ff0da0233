// Package main provides the entry point for the fernetcrack CLI.
//
// fernetcrack recovers the password protecting a Fernet token whose key was
// derived with PBKDF2-HMAC-SHA256. It runs a dictionary attack over every
// variant of a small base wordlist with one letter uppercased, one symbol
// inserted and one digit inserted.
//
// Usage:
//
//	fernetcrack crack
//	fernetcrack crack --mode full --workers 4
//	fernetcrack benchmark
//	fernetcrack estimate --mode full
//
// See --help for all available options.
package main

// main is the entry point for fernetcrack.
func main() {
	Execute()
}
