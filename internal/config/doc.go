// Package config provides configuration loading, merging, and validation
// facilities for the scorebook sync client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetClientConfig], which builds the merged
// [StructuredConfig], maps it onto the client-facing [ClientConfig] view,
// applies defaults for unset sync tuning knobs, and validates the result.
package config
