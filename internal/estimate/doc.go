// Package estimate turns the size of a candidate space and a measured
// throughput into worst-case and average-case attack durations.
package estimate
