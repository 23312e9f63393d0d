// Package gatesdk provides the wire types for the gatekeep HTTP API and a
// typed client for calling it. The service's handlers use the same types,
// so the two sides cannot drift apart.
package gatesdk
