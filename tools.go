//go:build tools
// +build tools

package squirrel

// Tools used by go generate (see peg/kind.go).
import (
	_ "golang.org/x/tools/cmd/stringer"
)
