// Package models defines the client-side shapes of the SOC API resources
// the console displays: users, alerts, dashboard metrics, investigations.
package models
