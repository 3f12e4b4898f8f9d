// Package tui is the interactive voting screen.
//
// The screen shows the ballot question, the live yes/no/total counters and
// two buttons. It connects to the wallet and contract as soon as it starts
// (after asking for the passphrase when the local wallet is locked), and
// re-reads the counters after every confirmed vote.
//
// Keys
//
//	←/→, tab     move between the buttons
//	enter        vote for the focused button
//	y / n        vote yes / no directly
//	r            re-read the counters
//	q, ctrl+c    quit
package tui
