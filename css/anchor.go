package css

import (
	"fmt"
	"strings"
)

// Anchor is a unit point inside element box used as transform-origin.
// Leading and trailing follow left-to-right layout.
type Anchor int

const (
	AnchorNone Anchor = iota
	AnchorCenter
	AnchorTop
	AnchorBottom
	AnchorLeading
	AnchorTrailing
	AnchorTopLeading
	AnchorTopTrailing
	AnchorBottomLeading
	AnchorBottomTrailing
)

var anchors = [...]struct{ name, value string }{
	AnchorNone:           {"none", ""},
	AnchorCenter:         {"center", "center"},
	AnchorTop:            {"top", "top"},
	AnchorBottom:         {"bottom", "bottom"},
	AnchorLeading:        {"leading", "left"},
	AnchorTrailing:       {"trailing", "right"},
	AnchorTopLeading:     {"top-leading", "left top"},
	AnchorTopTrailing:    {"top-trailing", "right top"},
	AnchorBottomLeading:  {"bottom-leading", "left bottom"},
	AnchorBottomTrailing: {"bottom-trailing", "right bottom"},
}

func (a Anchor) String() string {
	if a < 0 || int(a) >= len(anchors) {
		return fmt.Sprintf("Anchor(%d)", int(a))
	}
	return anchors[a].name
}

// IsNone is true when no anchor was requested.
func (a Anchor) IsNone() bool {
	return a == AnchorNone
}

// Origin returns transform-origin declaration, ok is false for AnchorNone.
func (a Anchor) Origin() (Property, bool) {
	if a.IsNone() || int(a) >= len(anchors) {
		return Property{}, false
	}
	return Prop("transform-origin", anchors[a].value), true
}

// ParseAnchor accepts names like "top-leading" or "top_leading", empty
// string is AnchorNone.
func ParseAnchor(s string) (Anchor, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if norm == "" {
		return AnchorNone, nil
	}
	for i, a := range anchors {
		if a.name == norm {
			return Anchor(i), nil
		}
	}
	return AnchorNone, fmt.Errorf("unknown anchor %q", s)
}
