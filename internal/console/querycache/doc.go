// Package querycache keeps server-derived data (dashboard metrics, alert
// pages, user lists) between views. Concurrent fetches of one key share a
// single request, and Clear drops everything, including the results of
// fetches that were still in flight.
package querycache
