package paramedit

import (
	"io/fs"

	"github.com/goliatone/go-paramedit/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet the editor page links to.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(paramedit.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
