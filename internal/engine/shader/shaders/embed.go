// Package shaders provides the embedded GLSL sources, one .vert/.frag pair
// per program kind.
package shaders

import "embed"

// FS holds <kind>.vert and <kind>.frag for every builtin program kind.
//
//go:embed *.vert *.frag
var FS embed.FS
