// Package config loads runtime configuration for the TaskKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file named by --config.
//  3. TASKKEEPER_SERVER_ADDR, TASKKEEPER_SESSION_FILE and
//     TASKKEEPER_REQUEST_TIMEOUT environment variables.
//  4. Command-line flags that were set explicitly.
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "session_file": "/home/me/.taskkeeper/session.json",
//	  "request_timeout": "10s"
//	}
package config
