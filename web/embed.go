// Package web holds the static assets copied into every built site.
package web

import "embed"

// StaticFS contains the stylesheet and the wasm loader script.
//
//go:embed static/*
var StaticFS embed.FS
