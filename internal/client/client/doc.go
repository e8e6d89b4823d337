// Package client talks to the remote product collection.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see Client): List, Create, Update,
//     Delete.
//  2. HTTPClient, a net/http implementation that sends create and update
//     payloads as multipart/form-data (fields prd_name, prd_price, prd_desc
//     and an optional image file) and decodes JSON responses.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx answers are returned as
// *ServerError carrying the status and the detail found in the body; use
// errors.As to inspect it, or Detail to get a loggable message.
//
// Every request carries an X-Request-ID header. Callers that want the same id
// in their logs put it in the context with WithRequestID.
package client
