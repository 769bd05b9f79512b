// Package http implements the HTTP transport layer of the image keeper.
//
// It renders the HTML pages, accepts image uploads and serves stored images.
// Sessions travel in a signed cookie checked by the auth middleware; one-shot
// notices travel in the flash cookie. Tracing, access logging and response
// compression are applied as chi middleware before requests reach the
// service layer.
package http
