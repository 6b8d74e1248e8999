// Package api contains typed clients for the SOC REST endpoints. Every
// response is decoded into an explicit type at this boundary; payloads that
// do not match the expected shape are rejected with ErrMalformedResponse.
package api
