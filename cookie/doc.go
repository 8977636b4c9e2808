// Package cookie models the single named cookie that carries a session id
// between client and server.
//
// A Cookie is built once per request from the raw inbound Cookie header and
// lives only for that request/response cycle. It tracks the value plus the
// scope, security and expiration attributes to send back, and records
// whether any attribute changed after the value was established — the signal
// the session layer uses to decide if an otherwise-unmodified session still
// needs an outbound Set-Cookie header.
//
// Wire encoding is delegated to net/http: parsing via http.ParseCookie and
// serialization via http.Cookie. String renders the name=value; attributes
// fragment without the header prefix.
package cookie
