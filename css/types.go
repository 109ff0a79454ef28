package css

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Ruleset is a selector with its declarations.
type Ruleset struct {
	Selector   Selector
	Properties PropertySet
	Important  bool // every declaration is emitted with !important
}

// MediaBlock is an @media block, features are AND-ed.
type MediaBlock struct {
	Features []MediaFeature
	Rules    []Ruleset
}

// KeyframeStep is a single "N% { ... }" entry.
type KeyframeStep struct {
	Position   float64 // percent, 0..100
	Properties PropertySet
}

// Keyframes is an @keyframes block.
type Keyframes struct {
	Name  string
	Steps []KeyframeStep
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule, MediaBlock or Keyframes is non-nil.
type StylesheetItem struct {
	Rule       *Ruleset
	MediaBlock *MediaBlock
	Keyframes  *Keyframes
}

// String returns CSS text of the item.
func (it StylesheetItem) String() string {
	var sb strings.Builder
	it.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// WriteTo writes item text to w, implementing io.WriterTo.
func (it StylesheetItem) WriteTo(w io.Writer) (int64, error) {
	var (
		n   int
		err error
	)
	switch {
	case it.Keyframes != nil:
		n, err = writeKeyframes(w, it.Keyframes)
	case it.MediaBlock != nil:
		n, err = writeMediaBlock(w, it.MediaBlock)
	case it.Rule != nil:
		n, err = writeRule(w, it.Rule, "")
	}
	return int64(n), err
}

// Stylesheet is an ordered list of top-level items.
type Stylesheet struct {
	Items []StylesheetItem
}

// Rules returns all top-level rulesets in order.
func (s *Stylesheet) Rules() []Ruleset {
	var rules []Ruleset
	for _, item := range s.Items {
		if item.Rule != nil {
			rules = append(rules, *item.Rule)
		}
	}
	return rules
}

// MediaBlocks returns all @media blocks in order.
func (s *Stylesheet) MediaBlocks() []MediaBlock {
	var blocks []MediaBlock
	for _, item := range s.Items {
		if item.MediaBlock != nil {
			blocks = append(blocks, *item.MediaBlock)
		}
	}
	return blocks
}

// KeyframeBlocks returns all @keyframes blocks in order.
func (s *Stylesheet) KeyframeBlocks() []Keyframes {
	var blocks []Keyframes
	for _, item := range s.Items {
		if item.Keyframes != nil {
			blocks = append(blocks, *item.Keyframes)
		}
	}
	return blocks
}

// WriteTo writes the stylesheet to w in item order, implementing io.WriterTo.
// Items are separated by a blank line.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, item := range s.Items {
		n, err := item.WriteTo(w)
		total += n
		if err != nil {
			return total, err
		}
		if i < len(s.Items)-1 {
			m, err := fmt.Fprint(w, "\n")
			total += int64(m)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single ruleset to w, every line prefixed with indent.
func writeRule(w io.Writer, rule *Ruleset, indent string) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, rule.Selector)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeProperties(w, rule.Properties, rule.Important, indent+"  ")
	total += n
	if err != nil {
		return total, err
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

// writeProperties writes declarations sorted by name then value.
func writeProperties(w io.Writer, props PropertySet, important bool, indent string) (int, error) {
	var total int
	for _, p := range props.Sorted() {
		value := p.Value
		if important && !strings.HasSuffix(value, "!important") {
			value += " !important"
		}
		n, err := fmt.Fprintf(w, "%s%s: %s;\n", indent, p.Name, value)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// writeMediaBlock writes an @media block to w.
func writeMediaBlock(w io.Writer, mb *MediaBlock) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@media %s {\n", MediaQuery(mb.Features))
	total += n
	if err != nil {
		return total, err
	}
	for i := range mb.Rules {
		n, err = writeRule(w, &mb.Rules[i], "  ")
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

// writeKeyframes writes an @keyframes block, one line per step.
func writeKeyframes(w io.Writer, kf *Keyframes) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@keyframes %s {\n", kf.Name)
	total += n
	if err != nil {
		return total, err
	}
	for _, step := range kf.Steps {
		var sb strings.Builder
		for _, p := range step.Properties.Sorted() {
			sb.WriteString(" ")
			sb.WriteString(p.String())
			sb.WriteString(";")
		}
		n, err = fmt.Fprintf(w, "  %s {%s }\n", FormatPercent(step.Position), sb.String())
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

// FormatPercent renders percentage without trailing zeros: 50%, 33.5%.
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}
