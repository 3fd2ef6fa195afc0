package compare

import (
	"fmt"
	"sort"
	"strings"

	"github.com/minios-linux/i18ncheck/icu"
)

// ICU compares ICU MessageFormat messages.
type ICU struct{}

// Compare parses both messages and diffs their element trees.
func (ICU) Compare(source, target string) (Result, error) {
	a, err := icu.Parse(source)
	if err != nil {
		return Result{}, err
	}
	b, err := icu.Parse(target)
	if err != nil {
		return Result{}, err
	}
	return result(DiffICU(a, b)), nil
}

// Validate parses message and returns its syntax error, if any.
func (ICU) Validate(message string) error {
	_, err := icu.Parse(message)
	return err
}

// DiffICU returns the structural differences between two parsed messages.
// Plural branches present on one side only are tolerated; select branches
// must match exactly.
func DiffICU(a, b []icu.Element) []string {
	ca, cb := icuStructure(a), icuStructure(b)

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
		if ea.Type == icu.TypePound {
			continue
		}
		if ea.Value != eb.Value {
			diags = append(diags, fmt.Sprintf(`Expected %s to contain "%s" but received "%s"`, ea.Type, ea.Value, eb.Value))
			continue
		}
		switch ea.Type {
		case icu.TypeTag:
			diags = append(diags, DiffICU(ea.Children, eb.Children)...)
		case icu.TypeSelect:
			ka, kb := ea.OptionKeys(), eb.OptionKeys()
			if strings.Join(ka, ",") != strings.Join(kb, ",") {
				diags = append(diags, fmt.Sprintf(`Error in select: Expected options "%s" but received "%s"`,
					strings.Join(ka, ", "), strings.Join(kb, ", ")))
				continue
			}
			diags = append(diags, branchDiffs("select", ea, eb)...)
		case icu.TypePlural:
			diags = append(diags, branchDiffs("plural", ea, eb)...)
		}
	}
	for _, eb := range cb[min(len(ca), len(cb)):] {
		diags = append(diags, fmt.Sprintf("Unexpected %s element", eb.Type))
	}
	return diags
}

// branchDiffs diffs the branches both elements define.
func branchDiffs(kind string, a, b icu.Element) []string {
	var diags []string
	for _, key := range a.OptionKeys() {
		other, ok := b.Options[key]
		if !ok {
			continue
		}
		for _, d := range DiffICU(a.Options[key], other) {
			diags = append(diags, "Error in "+kind+": "+d)
		}
	}
	return diags
}

// icuStructure drops literals and sorts by type, then value. Elements
// sharing both, such as two <b> tags, are ordered by their canonical form.
func icuStructure(elems []icu.Element) []icu.Element {
	type keyed struct {
		elem  icu.Element
		canon string
	}
	items := make([]keyed, 0, len(elems))
	for _, e := range elems {
		if e.Type != icu.TypeLiteral {
			items = append(items, keyed{elem: e, canon: canonical(e)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.elem.Type != b.elem.Type {
			return a.elem.Type < b.elem.Type
		}
		if a.elem.Value != b.elem.Value {
			return a.elem.Value < b.elem.Value
		}
		return a.canon < b.canon
	})
	out := make([]icu.Element, len(items))
	for i, it := range items {
		out[i] = it.elem
	}
	return out
}

// canonical renders the structure of e independently of literal text and
// of the order of its children.
func canonical(e icu.Element) string {
	var b strings.Builder
	writeCanonical(&b, e)
	return b.String()
}

func writeCanonical(b *strings.Builder, e icu.Element) {
	b.WriteString(e.Type.String())
	if e.Type == icu.TypePound {
		return
	}
	b.WriteString(":" + e.Value)
	switch e.Type {
	case icu.TypeTag:
		writeCanonicalList(b, e.Children)
	case icu.TypeSelect, icu.TypePlural:
		for _, key := range e.OptionKeys() {
			b.WriteString(" " + key)
			writeCanonicalList(b, e.Options[key])
		}
	}
}

func writeCanonicalList(b *strings.Builder, elems []icu.Element) {
	b.WriteByte('{')
	for i, e := range icuStructure(elems) {
		if i > 0 {
			b.WriteByte(',')
		}
		writeCanonical(b, e)
	}
	b.WriteByte('}')
}
