// Package config loads and merges the application's configuration from
// environment variables, command-line flags, and an optional JSON file.
//
// Sources are combined by a small builder: each source produces a partial
// [StructuredConfig], and the partials are merged in priority order with
// mergo (first non-zero value wins). The merged result is validated before
// it is handed to the rest of the application; configuration that cannot
// support the request guard chain (e.g. an empty API token) aborts startup.
package config
