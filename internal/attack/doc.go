// Package attack drives a dictionary attack: it pulls candidates lazily from
// a generator, hands each one to a verifier, counts attempts, reports
// progress at a fixed cadence and stops at the first match.
//
// With one worker (the default) candidates are verified strictly in
// generator order. With more workers, verification runs on an errgroup
// bounded by SetLimit; the goroutine that walks the generator remains the
// only writer of the attempt counter and the result, and a shared found
// flag keeps workers from verifying once a match is known.
//
// Benchmark measures verification throughput with synthetic candidates so
// that the estimate package can turn a space size into a time cost.
package attack
