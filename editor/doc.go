// Package editor provides a Bubble Tea component over a block document:
// keyboard handling through a prioritized rule engine, an intent resolver
// that turns semantic actions into document transactions, a block clipboard,
// and an interaction mode manager.
package editor
