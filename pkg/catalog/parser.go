package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// InclusionChecker reports whether the page type typeName exists in the given module.
// Implementations must not fail: an unknown module is reported as false.
type InclusionChecker interface {
	IsCompiledIn(module, typeName string) bool
}

// InclusionCheckerFunc adapts a plain function to InclusionChecker.
type InclusionCheckerFunc func(module, typeName string) bool

func (f InclusionCheckerFunc) IsCompiledIn(module, typeName string) bool {
	return f(module, typeName)
}

type nothingCompiledIn struct{}

func (nothingCompiledIn) IsCompiledIn(string, string) bool { return false }

var (
	utf8BOM  = []byte("\xef\xbb\xbf")
	jsonNull = []byte("null")
)

// object is one decoded JSON object. Keys are matched exactly, unlike struct decoding.
type object map[string]json.RawMessage

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}

func decodeObject(at string, raw json.RawMessage) (object, error) {
	if isNull(raw) {
		return nil, NewSchemaError(at, "expected object, got null")
	}
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, &SchemaError{Field: at, Message: "expected object", Err: err}
	}
	return obj, nil
}

// fields reads typed values out of an object and keeps the first schema error.
// Absent or null optional values take their zero value.
type fields struct {
	at  string
	obj object
	err error
}

func (f *fields) path(key string) string {
	if f.at == "" {
		return key
	}
	return f.at + "." + key
}

// lookup returns the raw value for key, or nil when it is absent or null.
func (f *fields) lookup(key string) json.RawMessage {
	if f.err != nil {
		return nil
	}
	raw, ok := f.obj[key]
	if !ok || isNull(raw) {
		return nil
	}
	return raw
}

func (f *fields) decode(key string, raw json.RawMessage, v interface{}, kind string) {
	if err := json.Unmarshal(raw, v); err != nil {
		f.err = &SchemaError{Field: f.path(key), Message: "expected " + kind, Err: err}
	}
}

func (f *fields) require(key string) string {
	if f.err != nil {
		return ""
	}
	raw, ok := f.obj[key]
	if !ok {
		f.err = NewSchemaError(f.path(key), "required string is missing")
		return ""
	}
	if isNull(raw) {
		f.err = NewSchemaError(f.path(key), "expected string, got null")
		return ""
	}
	var s string
	f.decode(key, raw, &s, "string")
	return s
}

func (f *fields) optionalString(key string) string {
	var s string
	if raw := f.lookup(key); raw != nil {
		f.decode(key, raw, &s, "string")
	}
	return s
}

func (f *fields) flag(key string) bool {
	var b bool
	if raw := f.lookup(key); raw != nil {
		f.decode(key, raw, &b, "boolean")
	}
	return b
}

// int32Value rounds half to even and rejects values outside the int32 range.
func (f *fields) int32Value(key string) int {
	raw := f.lookup(key)
	if raw == nil {
		return 0
	}
	var n float64
	if f.decode(key, raw, &n, "number"); f.err != nil {
		return 0
	}
	rounded := math.RoundToEven(n)
	if rounded < math.MinInt32 || rounded > math.MaxInt32 {
		f.err = NewSchemaError(f.path(key), fmt.Sprintf("number %v is outside the 32-bit integer range", n))
		return 0
	}
	return int(rounded)
}

// array returns the elements of the array at key. A required array must be present and not null.
func (f *fields) array(key string, required bool) []json.RawMessage {
	if f.err != nil {
		return nil
	}
	raw, ok := f.obj[key]
	if !ok || isNull(raw) {
		if required {
			f.err = NewSchemaError(f.path(key), "required array is missing")
		}
		return nil
	}
	var elems []json.RawMessage
	f.decode(key, raw, &elems, "array")
	return elems
}

// ParseDocument converts a catalog document into groups, applying the field defaults
// of the document schema. Key names are case-sensitive. A nil checker reports every page
// as not compiled in. No group is returned unless every group in the document parsed successfully.
func ParseDocument(data []byte, mode InclusionMode, checker InclusionChecker) ([]*Group, error) {
	if checker == nil {
		checker = nothingCompiledIn{}
	}

	var root object
	if err := json.Unmarshal(bytes.TrimPrefix(data, utf8BOM), &root); err != nil {
		return nil, &SchemaError{Message: err.Error(), Err: err}
	}
	if root == nil {
		return nil, NewSchemaError("", "expected object, got null")
	}

	doc := &fields{obj: root}
	rawGroups := doc.array("Groups", true)
	if doc.err != nil {
		return nil, doc.err
	}

	groups := make([]*Group, 0, len(rawGroups))
	for i, raw := range rawGroups {
		g, err := parseGroup(fmt.Sprintf("Groups[%d]", i), raw, mode, checker)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func parseGroup(at string, raw json.RawMessage, mode InclusionMode, checker InclusionChecker) (*Group, error) {
	obj, err := decodeObject(at, raw)
	if err != nil {
		return nil, err
	}

	f := &fields{at: at, obj: obj}
	g := &Group{
		UniqueID:         f.require("UniqueId"),
		Title:            f.require("Title"),
		SecondaryTitle:   f.require("SecondaryTitle"),
		Subtitle:         f.require("Subtitle"),
		ImagePath:        f.require("ImagePath"),
		ImageIconPath:    f.require("ImageIconPath"),
		Description:      f.require("Description"),
		APINamespace:     f.require("ApiNamespace"),
		IsSpecialSection: f.flag("IsSpecialSection"),
		HideGroup:        f.flag("HideGroup"),
		IsSingleGroup:    f.flag("IsSingleGroup"),
		IsExpanded:       f.flag("IsExpanded"),
	}
	rawItems := f.array("Items", false)
	if f.err != nil {
		return nil, f.err
	}
	if g.Badge, err = parseBadge(f); err != nil {
		return nil, err
	}

	g.Items = make([]*Item, 0, len(rawItems))
	for i, rawItem := range rawItems {
		item, err := parseItem(fmt.Sprintf("%s.Items[%d]", at, i), rawItem, mode, checker)
		if err != nil {
			return nil, err
		}
		g.Items = append(g.Items, item)
	}
	return g, nil
}

func parseItem(at string, raw json.RawMessage, mode InclusionMode, checker InclusionChecker) (*Item, error) {
	obj, err := decodeObject(at, raw)
	if err != nil {
		return nil, err
	}

	f := &fields{at: at, obj: obj}
	item := &Item{
		UniqueID:                         f.require("UniqueId"),
		Title:                            f.require("Title"),
		SecondaryTitle:                   f.require("SecondaryTitle"),
		APINamespace:                     f.require("ApiNamespace"),
		Subtitle:                         f.require("Subtitle"),
		ImagePath:                        f.require("ImagePath"),
		ImageIconPath:                    f.require("ImageIconPath"),
		Description:                      f.require("Description"),
		Content:                          f.require("Content"),
		IsNew:                            f.flag("IsNew"),
		IsUpdated:                        f.flag("IsUpdated"),
		IsPreview:                        f.flag("IsPreview"),
		HideItem:                         f.flag("HideItem"),
		HideNavigationViewItem:           f.flag("HideNavigationViewItem"),
		HideSourceCodeAndRelatedControls: f.flag("HideSourceCodeAndRelatedControls"),
	}
	declaredIncluded := f.flag("IncludedInBuild")
	rawDocs := f.array("Docs", false)
	rawRelated := f.array("RelatedControls", false)
	if f.err != nil {
		return nil, f.err
	}
	if item.Badge, err = parseBadge(f); err != nil {
		return nil, err
	}
	item.BadgeText = badgeText(item.IsNew, item.IsUpdated, item.IsPreview)

	switch mode {
	case ReflectionBased:
		// UniqueId names the page type, ApiNamespace the module it would be compiled into.
		item.IncludedInBuild = checker.IsCompiledIn(item.APINamespace, item.UniqueID)
	default:
		item.IncludedInBuild = declaredIncluded
	}

	item.Docs = make([]DocLink, 0, len(rawDocs))
	for i, rawDoc := range rawDocs {
		docAt := fmt.Sprintf("%s.Docs[%d]", at, i)
		docObj, err := decodeObject(docAt, rawDoc)
		if err != nil {
			return nil, err
		}
		df := &fields{at: docAt, obj: docObj}
		link := DocLink{Title: df.require("Title"), URI: df.require("Uri")}
		if df.err != nil {
			return nil, df.err
		}
		item.Docs = append(item.Docs, link)
	}

	item.RelatedControls = make([]string, 0, len(rawRelated))
	for i, rawID := range rawRelated {
		idAt := fmt.Sprintf("%s.RelatedControls[%d]", at, i)
		if isNull(rawID) {
			return nil, NewSchemaError(idAt, "expected string, got null")
		}
		var id string
		if err := json.Unmarshal(rawID, &id); err != nil {
			return nil, &SchemaError{Field: idAt, Message: "expected string", Err: err}
		}
		item.RelatedControls = append(item.RelatedControls, id)
	}
	return item, nil
}

// parseBadge returns nil when the record carries no InfoBadge block.
func parseBadge(record *fields) (*Badge, error) {
	raw := record.lookup("InfoBadge")
	if raw == nil {
		return nil, record.err
	}
	at := record.path("InfoBadge")
	obj, err := decodeObject(at, raw)
	if err != nil {
		return nil, err
	}

	f := &fields{at: at, obj: obj}
	b := &Badge{
		Value:                       f.optionalString("BadgeValue"),
		Style:                       DefaultBadgeStyle,
		SymbolIcon:                  f.optionalString("BadgeSymbolIcon"),
		BitmapIcon:                  f.optionalString("BadgeBitmapIcon"),
		FontIconGlyph:               f.optionalString("BadgeFontIconGlyph"),
		FontIconFontName:            f.optionalString("BadgeFontIconFontName"),
		Width:                       f.int32Value("BadgeWidth"),
		Height:                      f.int32Value("BadgeHeight"),
		HideBadge:                   f.flag("HideBadge"),
		HideNavigationViewItemBadge: f.flag("HideNavigationViewItemBadge"),
	}
	if style := f.lookup("BadgeStyle"); style != nil {
		f.decode("BadgeStyle", style, &b.Style, "string")
	}
	if f.err != nil {
		return nil, f.err
	}
	return b, nil
}
