// Package httputil provides the HTTP plumbing used to download avatars.
//
// # Client
//
// [Client] performs GET requests with a fixed timeout and default headers
// (the avatar hosts reject requests without a browser-like User-Agent) and
// maps response codes onto [ErrNotFound] and [ErrNetwork]. Server errors and
// transport failures are wrapped in [RetryableError].
//
//	c := httputil.NewClient(10*time.Second, map[string]string{"User-Agent": "Mozilla/5.0"})
//	data, err := c.GetBytes(ctx, "https://github.com/alice.png?size=64")
//
// # Retry
//
// [RetryNotify] re-runs an operation while it fails with a [RetryableError],
// doubling the delay between attempts and reporting every retry to a
// callback. Cancelling the context stops waiting immediately.
package httputil
