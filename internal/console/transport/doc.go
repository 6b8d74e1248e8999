// Package transport issues JSON requests to the SOC REST API. It attaches the
// current session credential to every call and turns transport failures into
// *RequestError values that callers can match with errors.Is.
package transport
