// Package hostbridge runs the host side of a sandboxed UI core: it owns the
// identity provider session, the persistent token cache and the side effects
// the core cannot perform itself, and exposes them as named capabilities.
//
// Capabilities can be called in-process through Service.Call or served over
// JSON-RPC, either on stdio or on a loopback streamable HTTP endpoint:
//
//	srv, _ := hostbridge.New(&hostbridge.Options{StorageURL: "file:///var/lib/app"})
//	defer srv.Close()
//	token, err := srv.Call(ctx, "getToken", nil)
package hostbridge
