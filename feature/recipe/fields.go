package recipe

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[^ '"]+`)

// unquoteToken strips surrounding whitespace and quote characters from a
// raw array element, returning the bare token. An element with no bare
// content yields "".
func unquoteToken(s string) string {
	return tokenPattern.FindString(s)
}

// addIntoArrayLine splices extra tokens into a single-line array-literal
// assignment. The existing elements between the first "(" and the last ")"
// are unioned with values, empties dropped, and the result written back
// sorted ascending and single-quoted. The canonical ordering makes the edit
// idempotent and keeps diffs stable across runs.
func addIntoArrayLine(line string, values []string) string {
	l := strings.Index(line, "(")
	r := strings.LastIndex(line, ")")
	var left, middle, right string
	if r != -1 {
		left, middle, right = line[:l+1], line[l+1:r], line[r:]
	} else {
		left, middle, right = line[:l+1], line[l+1:], ""
	}

	set := make(map[string]struct{})
	for _, raw := range strings.Fields(middle) {
		if tok := unquoteToken(raw); tok != "" {
			set[tok] = struct{}{}
		}
	}
	for _, v := range values {
		if v != "" {
			set[v] = struct{}{}
		}
	}

	tokens := make([]string, 0, len(set))
	for tok := range set {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)

	if len(tokens) == 0 {
		return left + right
	}
	return left + "'" + strings.Join(tokens, "' '") + "'" + right
}

// AddToArrayField adds tokens into the named array-valued assignment of the
// recipe file at path. Only the first line matching the field is rewritten;
// every other line round-trips verbatim. When the field does not exist a
// fresh "field=()" assignment is appended and filled the same way.
func AddToArrayField(path, field string, tokens []string) error {
	pattern := regexp.MustCompile(`^\s*` + regexp.QuoteMeta(field) + `=`)

	found := false
	err := Rewrite(path, func(line string) string {
		if found || !pattern.MatchString(line) {
			return line
		}
		found = true
		return addIntoArrayLine(line, tokens)
	})
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		// Missing recipe: fall through and create it with just this field.
	}
	if found {
		return nil
	}

	line := addIntoArrayLine(fmt.Sprintf("%s=()", field), tokens)
	return AppendLine(path, line)
}

// Convenience wrappers for the array fields a build script commonly patches.

func AddArch(path string, arches ...string) error {
	return AddToArrayField(path, "arch", arches)
}

func AddDepends(path string, deps ...string) error {
	return AddToArrayField(path, "depends", deps)
}

func AddMakeDepends(path string, deps ...string) error {
	return AddToArrayField(path, "makedepends", deps)
}

func AddCheckDepends(path string, deps ...string) error {
	return AddToArrayField(path, "checkdepends", deps)
}

func AddConflicts(path string, conflicts ...string) error {
	return AddToArrayField(path, "conflicts", conflicts)
}

func AddReplaces(path string, replaces ...string) error {
	return AddToArrayField(path, "replaces", replaces)
}

func AddProvides(path string, provides ...string) error {
	return AddToArrayField(path, "provides", provides)
}

func AddGroups(path string, groups ...string) error {
	return AddToArrayField(path, "groups", groups)
}
