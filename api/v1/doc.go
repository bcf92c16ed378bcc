// Package v1 holds the request and response types of the harness HTTP API and their
// conversions from internal models.
package v1
