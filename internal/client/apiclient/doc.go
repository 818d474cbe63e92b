// Package apiclient is the single HTTP client shared by every storefront
// call site.
//
// Each request passes through two interceptor stages:
//
//   - request: the session token, if any, is attached as
//     "Authorization: Bearer <token>" and a diagnostic record is emitted
//     (discarded unless a diagnostics logger is injected).
//   - response: failures are logged and returned unchanged to the caller.
//     A 401 additionally clears the stored token and, unless the current
//     location is already a login or signup page, navigates to /login.
//
// The decisions are made by the pure functions Decorate and Evaluate; the
// Client only carries out the resulting effects. There is no retry, no
// queuing and no token refresh: a failed request surfaces exactly once.
package apiclient
