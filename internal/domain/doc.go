// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (ballot, tally, receipt, wallet key), contracts
// (interfaces) and sentinel errors only.
package domain
