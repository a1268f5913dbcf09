// Package services implements the remote gateway to the backlog API.
//
// The backlog server owns durable persistence and catalog search (it proxies
// the IGDB provider); this package speaks its HTTP interface. Every response
// uses a uniform envelope carrying either a data payload or an error message:
//
//	{"data": {...}}
//	{"error": "something went wrong"}
//
// Any non-success envelope surfaces as a [shared.ErrRemote]-wrapped error
// carrying the server's message. The gateway never retries; callers decide
// whether to re-attempt.
//
// [Service] is the interface the collection store and UI consume;
// [BacklogAPI] is the HTTP implementation. Requests are rate limited and
// tagged with an X-Request-ID header for correlation with server logs.
package services
