// Package templates holds the templ sources for the web pages. The
// *_templ.go files beside each .templ file are generated; regenerate them
// after editing a template.
package templates

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate -path .
