package catalog

import (
	"fmt"
	"strings"
	"time"
)

// DefaultBadgeStyle is applied when an InfoBadge block is present but names no style.
const DefaultBadgeStyle = "AttentionValueInfoBadgeStyle"

const (
	BadgeTextNew     = "New"
	BadgeTextUpdated = "Updated"
	BadgeTextPreview = "Preview"
)

// InclusionMode selects how Item.IncludedInBuild is decided during population.
type InclusionMode int

const (
	// PropertyBased copies the document's IncludedInBuild flag verbatim.
	PropertyBased InclusionMode = iota
	// ReflectionBased asks the InclusionChecker whether the item's page is compiled in.
	ReflectionBased
)

func (m InclusionMode) String() string {
	switch m {
	case PropertyBased:
		return "property"
	case ReflectionBased:
		return "reflection"
	default:
		return fmt.Sprintf("InclusionMode(%d)", int(m))
	}
}

// ParseInclusionMode accepts "property" or "reflection" (case-insensitive).
func ParseInclusionMode(s string) (InclusionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "property", "propertybased":
		return PropertyBased, nil
	case "reflection", "reflectionbased":
		return ReflectionBased, nil
	}
	return 0, fmt.Errorf("unknown inclusion mode %q, expected property or reflection", s)
}

// Badge is an optional decoration attached to a Group or Item.
type Badge struct {
	Value                       string `json:"value,omitempty"`
	Style                       string `json:"style"`
	SymbolIcon                  string `json:"symbolIcon,omitempty"`
	BitmapIcon                  string `json:"bitmapIcon,omitempty"`
	FontIconGlyph               string `json:"fontIconGlyph,omitempty"`
	FontIconFontName            string `json:"fontIconFontName,omitempty"`
	Width                       int    `json:"width"`
	Height                      int    `json:"height"`
	HideBadge                   bool   `json:"hideBadge"`
	HideNavigationViewItemBadge bool   `json:"hideNavigationViewItemBadge"`
}

type DocLink struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Item describes a single demo/content page.
// All fields are fixed once population completes; IncludedInBuild is assigned while
// the item is being built and never revisited.
type Item struct {
	UniqueID       string `json:"uniqueId"`
	Title          string `json:"title"`
	SecondaryTitle string `json:"secondaryTitle"`
	APINamespace   string `json:"apiNamespace"`
	Subtitle       string `json:"subtitle"`
	Description    string `json:"description"`
	Content        string `json:"content"`
	ImagePath      string `json:"imagePath"`
	ImageIconPath  string `json:"imageIconPath"`
	// BadgeText is derived from IsNew, IsUpdated and IsPreview, in that order. Empty means none.
	BadgeText string `json:"badgeText,omitempty"`

	IsNew                            bool `json:"isNew"`
	IsUpdated                        bool `json:"isUpdated"`
	IsPreview                        bool `json:"isPreview"`
	HideItem                         bool `json:"hideItem"`
	HideNavigationViewItem           bool `json:"hideNavigationViewItem"`
	HideSourceCodeAndRelatedControls bool `json:"hideSourceCodeAndRelatedControls"`
	IncludedInBuild                  bool `json:"includedInBuild"`

	Badge           *Badge    `json:"badge,omitempty"`
	Docs            []DocLink `json:"docs"`
	RelatedControls []string  `json:"relatedControls"`
}

func (i *Item) String() string {
	return i.Title
}

// Group is a named, ordered collection of Items.
type Group struct {
	UniqueID       string `json:"uniqueId"`
	Title          string `json:"title"`
	SecondaryTitle string `json:"secondaryTitle"`
	APINamespace   string `json:"apiNamespace"`
	Subtitle       string `json:"subtitle"`
	Description    string `json:"description"`
	ImagePath      string `json:"imagePath"`
	ImageIconPath  string `json:"imageIconPath"`

	IsSpecialSection bool `json:"isSpecialSection"`
	HideGroup        bool `json:"hideGroup"`
	IsSingleGroup    bool `json:"isSingleGroup"`
	IsExpanded       bool `json:"isExpanded"`

	Badge *Badge  `json:"badge,omitempty"`
	Items []*Item `json:"items"`
}

func (g *Group) String() string {
	return g.Title
}

// DataVersion describes the population that filled a Store.
type DataVersion struct {
	LoadTime      time.Time
	Path          string
	Source        string
	Mode          InclusionMode
	GroupCount    int
	ItemCount     int
	DroppedGroups int
}

// badgeText applies the New > Updated > Preview precedence.
func badgeText(isNew, isUpdated, isPreview bool) string {
	switch {
	case isNew:
		return BadgeTextNew
	case isUpdated:
		return BadgeTextUpdated
	case isPreview:
		return BadgeTextPreview
	}
	return ""
}
