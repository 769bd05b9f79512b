package server

import "errors"

var (
	errNoServerAddress = errors.New("no HTTP address configured")
	errNoHTTPHandler   = errors.New("no HTTP handler to serve")
)
