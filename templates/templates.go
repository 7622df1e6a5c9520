// Package templates holds the code templates compiled into the binary.
package templates

import "embed"

//go:embed go/*.tmpl
var FS embed.FS
