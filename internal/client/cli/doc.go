// Package cli implements the taskkeeper command-line client on top of cobra.
//
// Every command loads the client configuration, opens a client bound to the
// stored session and runs one request:
//
//	taskkeeper register --name alice --email alice@example.com
//	taskkeeper login --name alice
//	taskkeeper task add --name "write report" --date 2026-03-14 --time 09:30 --priority high
//	taskkeeper task list
//	taskkeeper logout
package cli
