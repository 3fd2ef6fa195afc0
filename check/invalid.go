package check

import (
	"github.com/minios-linux/i18ncheck/catalog"
	"github.com/minios-linux/i18ncheck/compare"
)

// FindInvalid compares every key present and non-empty in both the source
// and a target, and reports the keys whose structure differs. A message
// that cannot be parsed aborts the run with a *ValidationError naming the
// file it was read from.
func FindInvalid(source File, targets map[string]*catalog.Translation, opts Options) (InvalidResult, error) {
	cmp := opts.format().Comparator
	validator, _ := cmp.(compare.Validator)
	names := sortedNames(targets)

	out := InvalidResult{}
	for _, key := range source.Content.Keys() {
		want, _ := source.Content.Get(key)
		if want == "" || opts.Ignore.Match(key) {
			continue
		}
		validated := validator == nil
		for _, name := range names {
			got, ok := targets[name].Get(key)
			if !ok || got == "" {
				continue
			}
			if !validated {
				if err := validator.Validate(want); err != nil {
					return nil, &ValidationError{File: source.Name, Key: key, Message: want, Err: err}
				}
				validated = true
			}
			res, err := cmp.Compare(want, got)
			if err != nil {
				return nil, &ValidationError{File: name, Key: key, Message: got, Err: err}
			}
			if !res.Equal {
				out[name] = append(out[name], InvalidEntry{Key: key, Msg: res.Diagnostics})
			}
		}
	}
	return out, nil
}
