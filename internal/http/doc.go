// Package http exposes the storefront over stdlib net/http. PublicAPI
// serves the locale-prefixed read routes the storefront front end consumes;
// AdminAPI serves the bearer-authenticated mutation routes plus the media
// library endpoints. Both register method-qualified patterns on a caller
// provided *http.ServeMux so hosts can mount them alongside their own
// handlers.
package http
