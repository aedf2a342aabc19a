package bringup

import (
	"embed"
	"io/fs"
)

//go:embed templates
var embedded embed.FS

// DefaultTemplates returns the template set compiled into the binary.
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
