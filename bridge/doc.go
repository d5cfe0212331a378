// Package bridge assembles a hostbridge service from command line flags and
// HOSTBRIDGE_* environment variables and serves it on stdio or loopback HTTP.
package bridge
