// Package app assembles the HTTP application: configuration loading,
// logger initialization, the report pipeline service, the chi router
// with its middleware chain, and graceful server lifecycle.
package app
