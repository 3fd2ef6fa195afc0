package discover

import (
	"io/fs"
	"path"

	"github.com/spf13/afero"

	"github.com/minios-linux/i18ncheck/catalog"
)

// candidateDirs are the usual places for translation catalogs, relative to
// the project root.
var candidateDirs = []string{
	"locales",
	"public/locales",
	"src/locales",
	"translations",
	"public/translations",
	"src/translations",
	"messages",
	"i18n",
	"src/i18n",
	"lang",
	"lib/l10n",
}

// Detect returns the candidate directories under root that hold catalog
// files, either directly or one directory down (locales/en/common.json).
func Detect(fsys afero.Fs, root string) []string {
	var found []string
	for _, dir := range candidateDirs {
		full := path.Join(clean(root), dir)
		if hasCatalogs(fsys, full, 1) {
			found = append(found, full)
		}
	}
	return found
}

func hasCatalogs(fsys afero.Fs, dir string, depth int) bool {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return false
	}
	var subdirs []fs.FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, entry)
			continue
		}
		if catalog.IsCatalog(entry.Name()) {
			return true
		}
	}
	if depth == 0 {
		return false
	}
	for _, sub := range subdirs {
		if hasCatalogs(fsys, path.Join(dir, sub.Name()), depth-1) {
			return true
		}
	}
	return false
}
