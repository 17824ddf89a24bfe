package ui

import (
	"encoding/json"
	"io/fs"
	"path"
	"strings"
	"sync"

	"fi-dashboard/internal/ui/assets"
)

const defaultStylesheetPath = "/ui/static/app.css"

var (
	stylesheetPathOnce sync.Once
	stylesheetPath     = defaultStylesheetPath
)

// uiStylesheetHref returns the fingerprinted stylesheet named in
// static/manifest.json, or the plain app.css when there is no manifest.
func uiStylesheetHref() string {
	stylesheetPathOnce.Do(func() {
		manifestBytes, err := fs.ReadFile(assets.StaticFS(), "static/manifest.json")
		if err != nil {
			return
		}

		manifest := map[string]string{}
		if err := json.Unmarshal(manifestBytes, &manifest); err != nil {
			return
		}

		name := strings.TrimSpace(manifest["app.css"])
		if name == "" || path.Base(name) != name || path.Ext(name) != ".css" {
			return
		}

		stylesheetPath = "/ui/static/" + name
	})

	return stylesheetPath
}
