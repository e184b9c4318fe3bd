// Package config provides configuration loading, merging, and validation
// for the restaurant server.
//
// Configuration is assembled from multiple sources in the following priority
// order (a field set by an earlier source is kept):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Defaults are applied after merging. The entry point is [GetStructuredConfig].
package config
