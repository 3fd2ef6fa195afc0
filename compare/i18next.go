package compare

import (
	"fmt"
	"sort"
	"strings"

	"github.com/minios-linux/i18ncheck/i18next"
)

// I18Next compares messages written in i18next syntax.
type I18Next struct{}

// Compare tokenizes both messages and diffs their placeholders. It never
// fails: every string is a valid i18next message.
func (I18Next) Compare(source, target string) (Result, error) {
	return result(DiffI18Next(i18next.Parse(source), i18next.Parse(target))), nil
}

// DiffI18Next returns the structural differences between two tokenized
// messages.
func DiffI18Next(a, b []i18next.Element) []string {
	ca, cb := i18nextStructure(a), i18nextStructure(b)

	var diags []string
	for i, ea := range ca {
		if i >= len(cb) {
			diags = append(diags, "Missing element "+ea.Type.String())
			continue
		}
		eb := cb[i]
		if ea.Type != eb.Type {
			diags = append(diags, fmt.Sprintf("Expected element of type %q but received %q", ea.Type, eb.Type))
			continue
		}
		switch ea.Type {
		case i18next.Tag:
			switch {
			case ea.TagName() != eb.TagName():
				diags = append(diags, fmt.Sprintf(`Expected tag "%s" but received "%s"`, ea.Raw, eb.Raw))
			case ea.VoidElement && !eb.VoidElement:
				diags = append(diags, fmt.Sprintf(`Expected a self-closing "%s" tag`, eb.Raw))
			case !ea.VoidElement && eb.VoidElement:
				diags = append(diags, fmt.Sprintf(`Non expected self-closing "%s" tag`, eb.Raw))
			}
		default:
			if errs := optionDiffs(ea, eb); len(errs) > 0 {
				diags = append(diags, "Error in "+ea.Type.String()+": "+strings.Join(errs, ", "))
			}
		}
	}
	for _, eb := range cb[min(len(ca), len(cb)):] {
		diags = append(diags, fmt.Sprintf("Unexpected %s element", eb.Type))
	}
	return diags
}

// optionDiffs compares the sorted comma-separated options of two
// placeholders, so "{{val, format}}" equals "{{format,val}}".
func optionDiffs(a, b i18next.Element) []string {
	oa, ob := a.Options(), b.Options()
	sort.Strings(oa)
	sort.Strings(ob)

	var errs []string
	for i := 0; i < max(len(oa), len(ob)); i++ {
		switch {
		case i >= len(ob):
			errs = append(errs, "Missing "+oa[i])
		case i >= len(oa):
			errs = append(errs, "Unexpected "+ob[i])
		case oa[i] != ob[i]:
			errs = append(errs, fmt.Sprintf("Expected %s but received %s", oa[i], ob[i]))
		}
	}
	return errs
}

// i18nextStructure drops text and sorts by type, then by the key the
// elements are compared on: the tag name for tags, the sorted options for
// everything else.
func i18nextStructure(elems []i18next.Element) []i18next.Element {
	out := make([]i18next.Element, 0, len(elems))
	for _, e := range elems {
		if e.Type != i18next.Text {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if ka, kb := sortKey(a), sortKey(b); ka != kb {
			return ka < kb
		}
		return a.Raw < b.Raw
	})
	return out
}

func sortKey(e i18next.Element) string {
	if e.Type == i18next.Tag {
		return e.TagName()
	}
	opts := e.Options()
	sort.Strings(opts)
	return strings.Join(opts, ",")
}
