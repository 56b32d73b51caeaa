// Package oracle provides solvers for cubesync sessions.
//
// Every solver implements cubesync.Oracle: it takes a validated 54-character
// facelet string and returns a space-separated move sequence. TwoPhase
// solves any legal state in process. Search finds shortest solutions but is
// bounded in depth, so it suits short scrambles and tests. Remote calls an
// external solver service over HTTP. Checked wraps any of them and
// verifies both sides of the exchange.
package oracle
