// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// The feed API key is intentionally not part of the file; it is taken from
// the MTA_API_KEY environment variable so credentials stay out of checked-in
// configuration.
package config
