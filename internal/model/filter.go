package model

import "strings"

// FilterState maps filter field API names to lower-cased constraint
// values. Absence of a key means no constraint on that field.
type FilterState map[string]string

// Set records a constraint, lower-casing the value the way the filter
// inputs do. An empty value removes the constraint entirely.
func (s FilterState) Set(apiName, value string) {
	if value == "" {
		delete(s, apiName)
		return
	}
	s[apiName] = strings.ToLower(value)
}

// Empty reports whether no constraints are active.
func (s FilterState) Empty() bool {
	return len(s) == 0
}
