// Package config loads runtime configuration for the StoryKeeper CLI.
//
// Three layers apply in order, each overriding the previous: built-in
// defaults, an optional JSON file named by -c or -config, and the
// command-line flags -a (server URL), -d (data directory) and -i (online
// check interval, seconds).
//
// A JSON file looks like:
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:8080",
//	  "data_dir": "/home/me/.storykeeper",
//	  "online_check_interval": "3s"
//	}
//
// Durations in the file may be strings like "3s" or integer nanoseconds.
// The client reads no environment variables; that layer belongs to the
// server, which runs containerized.
package config
