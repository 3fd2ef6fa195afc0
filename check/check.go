// Package check finds missing, invalid, unused and undefined translation
// keys. The Find functions work on one source catalog at a time; the Check
// functions run them over a whole set of catalog files and merge the
// results per file.
package check

import (
	"context"
	"sort"

	"github.com/spf13/afero"

	"github.com/minios-linux/i18ncheck/catalog"
	"github.com/minios-linux/i18ncheck/extract"
)

// Translations holds the results of the missing and invalid checks. A nil
// field means the check was not requested.
type Translations struct {
	MissingKeys Result
	InvalidKeys InvalidResult
}

// CheckTranslations pairs every source file with the targets referencing
// it and runs the selected missing and invalid checks. Results of several
// source files are merged per target file.
func CheckTranslations(sources, targets []File, opts Options) (Translations, error) {
	var res Translations
	if opts.Has(MissingKeys) {
		missing, err := fold(sources, func(src File) (Result, error) {
			return FindMissing(src.Content, targetsFor(src, targets), opts), nil
		})
		if err != nil {
			return Translations{}, err
		}
		res.MissingKeys = missing
	}
	if opts.Has(InvalidKeys) {
		invalid, err := fold(sources, func(src File) (InvalidResult, error) {
			return FindInvalid(src, targetsFor(src, targets), opts)
		})
		if err != nil {
			return Translations{}, err
		}
		res.InvalidKeys = invalid
	}
	return res, nil
}

func targetsFor(src File, targets []File) map[string]*catalog.Translation {
	out := make(map[string]*catalog.Translation)
	for _, t := range targets {
		if t.Reference == src.Name {
			out[t.Name] = t.Content
		}
	}
	return out
}

func sortedNames[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CodeKeys finds the source files under paths and extracts their keys with
// the extractor of the selected format. It also returns the files read.
// Both are nil when the format has no extractor.
func CodeKeys(ctx context.Context, fsys afero.Fs, paths []string, opts Options, workers int) ([]extract.Key, []string, error) {
	ex, ok := opts.format().Extractor(opts)
	if !ok {
		return nil, nil, nil
	}
	files, err := extract.FindSources(fsys, paths)
	if err != nil {
		return nil, nil, err
	}
	keys, err := extract.Run(ctx, fsys, ex, files, workers)
	if err != nil {
		return nil, nil, err
	}
	return keys, files, nil
}

// CheckUnusedKeys runs FindUnused when the unused check is requested and
// the format supports code extraction. Otherwise it returns nil.
func CheckUnusedKeys(sources []File, keys []extract.Key, opts Options) Result {
	if !opts.Has(UnusedKeys) {
		return nil
	}
	if !opts.format().ExtractsKeys() {
		return nil
	}
	return FindUnused(sources, keys, opts)
}

// CheckUndefinedKeys runs FindUndefined when the undefined check is
// requested and the format supports code extraction. Otherwise it returns
// nil.
func CheckUndefinedKeys(sources []File, keys []extract.Key, opts Options) Result {
	if !opts.Has(UndefinedKeys) {
		return nil
	}
	if !opts.format().ExtractsKeys() {
		return nil
	}
	return FindUndefined(sources, keys, opts)
}
