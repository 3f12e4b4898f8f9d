// Package commands defines the chainvote CLI and wires dependencies for subcommands.
//
// Commands
//
//   - ui        Interactive voting screen (default)
//   - init      Create the local wallet key
//   - import    Import a hex private key or a keystore file
//   - address   Print the wallet address
//   - tally     Print the current yes/no counts
//   - vote      Cast a yes or no vote and wait for it to be mined
//   - history   List votes cast from this machine
//
// # Implementation
//
// The root command loads configuration (config file, .env, environment, then
// flags), builds the logger and the dependency graph before any subcommand
// runs, so handlers share one app context. Chain and wallet connections are
// opened on first use.
package commands
