// Package config provides configuration loading, merging, and validation
// facilities for the image gateway.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON or YAML config file
//
// Fields left empty by every source receive the package defaults. The main
// entry point is [GetStructuredConfig].
package config
