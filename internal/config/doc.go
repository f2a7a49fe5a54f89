// Package config loads the TechCorp site configuration.
//
// Values are layered, later layers winning:
//
//  1. built-in defaults (Default)
//  2. the JSON file techcorp.json, when present
//  3. TECHCORP_ environment variables
//
// Environment variable names map onto keys by lowercasing, dropping the
// prefix and splitting the section at the first underscore, so
// TECHCORP_INBOX_REDIS_ADDR sets inbox.redis_addr. Durations accept Go
// syntax ("1.5s", "30m").
//
// # Configuration File Structure
//
//	{
//	  "server": {"host": "0.0.0.0", "port": 8080, "secure_cookies": true},
//	  "log": {"level": "info", "format": "json"},
//	  "contact": {"submit_delay": "1.5s", "reset_delay": "3s", "rate_limit": 5},
//	  "inbox": {"driver": "redis", "redis_addr": "localhost:6379"},
//	  "metrics": {"enabled": true}
//	}
//
// # Usage
//
//	cfg, err := config.Load("techcorp.json")
//	if err != nil {
//	    errors.PrintError(os.Stderr, err)
//	    os.Exit(1)
//	}
//	fmt.Println("Listening on", cfg.Server.Addr())
package config
