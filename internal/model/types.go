// Package model defines shared data structures.
package model

import "time"

// AttackOutcome captures a finished attack for reporting.
type AttackOutcome struct {
	Algorithm   string
	Key         string
	Language    string
	Probability float64
	Candidates  map[string]float64
	Deciphered  string
	KeysTried   int
	Workers     int
	Elapsed     time.Duration
}

// ProgressEvent is one live update from a running attack. A Total of
// zero means the key space size is unknown up front.
type ProgressEvent struct {
	Done    int
	Total   int
	Elapsed time.Duration
}
