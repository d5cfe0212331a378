// Package pending tracks in-flight requests that are completed out of band,
// such as an authorization prompt answered by a browser redirect.
//
// Each request owns its own entry keyed by a generated id, so overlapping
// requests cannot observe or overwrite each other's completion.
package pending
