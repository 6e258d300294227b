//go:build tools

// Package tools tracks build-time tools of this module, keeping them in go.mod.
package tools

import (
	_ "golang.org/x/tools/cmd/stringer"
)
