package check

import "github.com/minios-linux/i18ncheck/catalog"

// Result maps a file path to the keys found for it. Files without findings
// are absent. A nil Result means the check was not requested.
type Result map[string][]string

// InvalidEntry is a key whose target message does not match the structure
// of the source message.
type InvalidEntry struct {
	Key string
	Msg string
}

// InvalidResult maps a target file path to its invalid keys.
type InvalidResult map[string][]InvalidEntry

// File is a loaded catalog file. Reference names the source file a target
// translates and is empty for source files.
type File struct {
	Name      string
	Reference string
	Content   *catalog.Translation
}

// merge returns a new map holding the entries of a followed by those of b,
// concatenating the lists of files present in both.
func merge[M ~map[string][]T, T any](a, b M) M {
	out := make(M, len(a)+len(b))
	for file, items := range a {
		out[file] = append([]T(nil), items...)
	}
	for file, items := range b {
		out[file] = append(out[file], items...)
	}
	return out
}

// fold merges the per-item results of fn over items, in order.
func fold[M ~map[string][]T, T any, I any](items []I, fn func(I) (M, error)) (M, error) {
	acc := M{}
	for _, item := range items {
		r, err := fn(item)
		if err != nil {
			return nil, err
		}
		acc = merge(acc, r)
	}
	return acc, nil
}
