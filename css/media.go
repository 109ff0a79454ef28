package css

import (
	"strings"

	"github.com/samber/lo"
)

// MediaFeature is anything convertible into a single @media condition.
type MediaFeature interface {
	// MediaCondition returns condition text including parentheses,
	// e.g. "(prefers-reduced-motion: reduce)".
	MediaCondition() string
}

// Feature is a plain "(name: value)" condition, value may be empty for
// boolean features.
type Feature struct {
	Name  string
	Value string
}

func (f Feature) MediaCondition() string {
	if f.Value == "" {
		return "(" + f.Name + ")"
	}
	return "(" + f.Name + ": " + f.Value + ")"
}

// RawCondition keeps already formatted media query text.
type RawCondition string

func (r RawCondition) MediaCondition() string {
	return string(r)
}

// MediaQuery joins conditions with "and", repeated conditions are dropped.
func MediaQuery(features []MediaFeature) string {
	conds := lo.Uniq(lo.Map(features, func(f MediaFeature, _ int) string {
		return f.MediaCondition()
	}))
	return strings.Join(conds, " and ")
}
