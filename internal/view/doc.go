// Package view renders the HTML pages of the application.
//
// Handlers depend on the [Renderer] interface only. The default
// implementation, returned by [NewRenderer], executes html/template files
// embedded into the binary. Every page is parsed together with the shared
// layout so that the navigation bar and flash messages look the same
// everywhere.
package view
