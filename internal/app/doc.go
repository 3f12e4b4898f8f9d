// Package app wires application dependencies for the CLI.
//
// It loads Config from the config file, the environment and flags, builds the
// concrete stores, wallet provider, chain client and high-level services, and
// exposes them via the App struct for commands to use.
package app
