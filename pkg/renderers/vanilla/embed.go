package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// StylesheetName is the bundled stylesheet served under the assets route.
const StylesheetName = "paramedit.css"

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded assets so callers can serve them over HTTP.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

func defaultStylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}
