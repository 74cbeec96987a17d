// Package commander is an HTTP client for a remote commander server, which
// exposes filesystem-style operations under /api/commander/.
//
// # Lifecycle
//
// A Client is constructed with a settings.Provider, initialized once, then
// used:
//
//	client, err := commander.New(commander.Options{
//	    Settings: &settings.EnvProvider{},
//	    Logger:   logger,
//	})
//	if err != nil {
//	    return err
//	}
//	if err := client.Init(ctx); err != nil {
//	    return err
//	}
//	resp, err := client.ReadFile(ctx, commander.ReadFileRequest{Path: "notes.txt"})
//
// Init fails with ErrConfiguration when the server URL or base path is
// missing. When no token is configured but a username and password are,
// Init obtains one with an OAuth2 password grant against
// <authUrl>/realms/LIT/protocol/openid-connect/token.
//
// # Envelopes
//
// Operations never return transport failures as Go errors. Every outcome is
// a Response envelope:
//
//   - network failure: Success=false, Error="Network error: <message>"
//   - non-2xx status:  Success=false, Error="HTTP <status>: <status text>"
//   - 2xx:             Success=true, Data decoded from the body
//
// Bodies that are themselves {success, data, error} envelopes are unwrapped
// before decoding, and a body with "success": false becomes a failed
// Response carrying the server's error.
//
// # Paths
//
// Every request path is prefixed with the configured base path (see
// ValidatePath). The prefixing is a convenience, not an access control
// mechanism.
package commander
