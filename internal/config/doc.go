// Package config provides configuration loading, merging, and validation
// facilities for the note-keeper client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. A .env file in the working directory, if present (exported into the
//     process environment without overriding variables already set)
//  3. Environment variables
//  4. Command-line flags
//  5. JSON config file
//
// The main entry point is [GetClientConfig].
package config
