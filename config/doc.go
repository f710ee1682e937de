// Package config loads tool settings from an optional YAML file, USERDB_*
// environment variables and command-line flags through viper.
package config
