// Package flow contains the ways an authorization URL reaches the user: the
// system browser, a log line for out-of-band completion, or a headless HTTP
// follower for environments where the provider answers without UI.
package flow
