// Package cli implements the interactive SOC console: a read–eval–print loop
// that signs the analyst in, renders the views chosen by the route guard and
// runs alert triage and user management commands against the SOC API.
package cli
