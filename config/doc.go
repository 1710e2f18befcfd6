// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Besides the server and simulation settings it lists the demo fleet that the
// service starts tracking on boot.
package config
