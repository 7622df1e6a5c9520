package registry

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/kolah/paydoc/internal/model"
)

// Differences describes how right differs from left, one entry per difference,
// as "path: detail". The order follows the definition layout so reports are stable.
func Differences(left, right model.SchemaDef) []string {
	var diffs []string
	add := func(path, format string, args ...any) {
		diffs = append(diffs, path+": "+fmt.Sprintf(format, args...))
	}

	if left.Version != right.Version {
		add("version", "%s vs %s", left.Version, right.Version)
	}
	if left.Kind != right.Kind {
		add("kind", "%s vs %s", left.Kind, right.Kind)
	}
	if left.Type != right.Type {
		add("type", "%q vs %q", left.Type, right.Type)
	}
	if left.Format != right.Format {
		add("format", "%q vs %q", left.Format, right.Format)
	}
	if left.Description != right.Description {
		add("description", "differs")
	}
	if !sameRef(left.Items, right.Items) {
		add("items", "%s vs %s", refString(left.Items), refString(right.Items))
	}
	if strings.Join(left.Enum, "|") != strings.Join(right.Enum, "|") {
		add("enum", "[%s] vs [%s]", strings.Join(left.Enum, ", "), strings.Join(right.Enum, ", "))
	}

	rightFields := make(map[string]model.Field, len(right.Fields))
	for _, f := range right.Fields {
		rightFields[f.Name] = f
	}
	leftNames := make(map[string]bool, len(left.Fields))
	for _, lf := range left.Fields {
		leftNames[lf.Name] = true
		path := "fields." + lf.Name
		rf, ok := rightFields[lf.Name]
		if !ok {
			add(path, "missing on conflicting definition")
			continue
		}
		if lf.Type.String() != rf.Type.String() {
			add(path, "type %s vs %s", lf.Type, rf.Type)
		}
		if lf.Optional != rf.Optional {
			add(path, "optional %t vs %t", lf.Optional, rf.Optional)
		}
		if lf.Nullable != rf.Nullable {
			add(path, "nullable %t vs %t", lf.Nullable, rf.Nullable)
		}
		if lf.Description != rf.Description {
			add(path, "description differs")
		}
	}
	for _, rf := range right.Fields {
		if !leftNames[rf.Name] {
			add("fields."+rf.Name, "missing on existing definition")
		}
	}

	if len(diffs) == 0 && !fieldOrderEqual(left.Fields, right.Fields) {
		add("fields", "declared in a different order")
	}
	if !cmp.Equal(left.Example, right.Example) {
		add("example", "differs")
	}

	return diffs
}

func sameRef(a, b *model.TypeRef) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}

func refString(t *model.TypeRef) string {
	if t == nil {
		return "none"
	}
	return t.String()
}

func fieldOrderEqual(a, b []model.Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}
