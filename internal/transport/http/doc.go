// Package http contains the HTTP transport layer: chi handlers that
// accept workbook uploads, run the report pipeline and stream the
// resulting artifacts back to the client.
//
// Handlers hold no business logic. They decode the request, call the
// service and encode the result; every error goes through the shared
// RFC 7807 error handler.
package http
