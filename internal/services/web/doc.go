// Package web hosts the browser-facing quillroom service.
//
// It composes the app modules (groups and documents) behind shared request
// middleware, resolves the acting user from a trusted proxy header or a
// configured development user, and serves the health endpoint.
package web
