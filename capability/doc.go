// Package capability implements the asynchronous bridge between a UI core and
// the host: a process-wide table from capability name to handler, exposed
// in-process through Registry.Call and over JSON-RPC through NewHandler.
//
// Handlers receive a single optional JSON payload and return a result or an
// error. Unknown names are protocol errors; handler errors and panics are
// reported as capability failures and never take the bridge down.
package capability
