// Package middleware contains HTTP middleware for the Fiber application.
//
//   - auth: API key validation protecting the sync endpoints.
//   - rayid: a request id (RayID) stored in the context and echoed in the
//     X-Ray-ID response header for log correlation.
package middleware
