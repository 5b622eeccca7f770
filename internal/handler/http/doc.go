// Package http implements the HTTP transport layer of the telemetry API.
// It provides the guard-chain middleware, route handlers, and
// request/response utilities for the REST API:
//
//	GET  /api/v1/health    — liveness probe, no guards
//	POST /api/v1/readings  — submit one reading (size, rate, auth guards)
//	GET  /api/v1/readings  — filtered, paginated listing (same guards)
//
// Guards short-circuit in a fixed order; when any of them rejects, the
// remaining guards and the handler body never run.
package http
