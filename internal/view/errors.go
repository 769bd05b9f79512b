package view

import "errors"

// ErrUnknownPage is returned by Render for a page that has no template.
var ErrUnknownPage = errors.New("unknown page")
