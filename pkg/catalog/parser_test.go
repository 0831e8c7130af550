package catalog

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const groupFields = `"SecondaryTitle":"","Subtitle":"","Description":"","ImagePath":"","ImageIconPath":""`

func item(id, extra string) string {
	s := `{"UniqueId":"` + id + `","Title":"` + id + `",` + groupFields + `,"ApiNamespace":"ns","Content":"c"`
	if extra != "" {
		s += "," + extra
	}
	return s + "}"
}

func group(id, title, extra string, items ...string) string {
	s := `{"UniqueId":"` + id + `","Title":"` + title + `",` + groupFields + `,"ApiNamespace":"ns","Items":[` + strings.Join(items, ",") + `]`
	if extra != "" {
		s += "," + extra
	}
	return s + "}"
}

func document(groups ...string) string {
	return `{"Groups":[` + strings.Join(groups, ",") + `]}`
}

func TestParseDocumentEndToEnd(t *testing.T) {
	doc := `{"Groups":[{"UniqueId":"g1","Title":"T","SecondaryTitle":"","Subtitle":"","Description":"","ImagePath":"","ImageIconPath":"","ApiNamespace":"ns","Items":[{"UniqueId":"i1","Title":"Item1","SecondaryTitle":"","Subtitle":"","Description":"","ImagePath":"","ImageIconPath":"","ApiNamespace":"ns","Content":"c","IsNew":true}]}]}`

	groups, err := ParseDocument([]byte(doc), PropertyBased, nil)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	want := []*Group{{
		UniqueID:     "g1",
		Title:        "T",
		APINamespace: "ns",
		Items: []*Item{{
			UniqueID:        "i1",
			Title:           "Item1",
			APINamespace:    "ns",
			Content:         "c",
			BadgeText:       BadgeTextNew,
			IsNew:           true,
			Docs:            []DocLink{},
			RelatedControls: []string{},
		}},
	}}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Errorf("ParseDocument() mismatch (-want +got):\n%s", diff)
	}
}

func TestBadgeTextPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		flags string
		want  string
	}{
		{name: "none", flags: "", want: ""},
		{name: "new wins over updated", flags: `"IsUpdated":true,"IsNew":true`, want: BadgeTextNew},
		{name: "new wins over all", flags: `"IsPreview":true,"IsUpdated":true,"IsNew":true`, want: BadgeTextNew},
		{name: "updated wins over preview", flags: `"IsPreview":true,"IsUpdated":true`, want: BadgeTextUpdated},
		{name: "preview only", flags: `"IsPreview":true`, want: BadgeTextPreview},
		{name: "explicit false", flags: `"IsNew":false`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := ParseDocument([]byte(document(group("g", "G", "", item("i", tt.flags)))), PropertyBased, nil)
			if err != nil {
				t.Fatalf("ParseDocument() error = %v", err)
			}
			got := groups[0].Items[0]
			if got.BadgeText != tt.want {
				t.Errorf("BadgeText = %q, want %q", got.BadgeText, tt.want)
			}
			if got.IsNew != strings.Contains(tt.flags, `"IsNew":true`) {
				t.Errorf("IsNew = %v, source flags %s", got.IsNew, tt.flags)
			}
			if got.IsUpdated != strings.Contains(tt.flags, `"IsUpdated":true`) {
				t.Errorf("IsUpdated = %v, source flags %s", got.IsUpdated, tt.flags)
			}
		})
	}
}

func TestParseBadge(t *testing.T) {
	tests := []struct {
		name  string
		badge string
		want  *Badge
	}{
		{
			name:  "absent",
			badge: "",
			want:  nil,
		},
		{
			name:  "null",
			badge: `"InfoBadge":null`,
			want:  nil,
		},
		{
			name:  "empty block gets default style",
			badge: `"InfoBadge":{}`,
			want:  &Badge{Style: DefaultBadgeStyle},
		},
		{
			name:  "all fields",
			badge: `"InfoBadge":{"BadgeValue":"3","BadgeStyle":"CriticalIconInfoBadgeStyle","BadgeSymbolIcon":"Important","BadgeBitmapIcon":"ms-appx:///a.png","BadgeFontIconGlyph":"","BadgeFontIconFontName":"Segoe","BadgeWidth":16,"BadgeHeight":12.5,"HideBadge":true,"HideNavigationViewItemBadge":true}`,
			want: &Badge{
				Value:                       "3",
				Style:                       "CriticalIconInfoBadgeStyle",
				SymbolIcon:                  "Important",
				BitmapIcon:                  "ms-appx:///a.png",
				FontIconGlyph:               "",
				FontIconFontName:            "Segoe",
				Width:                       16,
				Height:                      12,
				HideBadge:                   true,
				HideNavigationViewItemBadge: true,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := ParseDocument([]byte(document(group("g", "G", tt.badge, item("i", tt.badge)))), PropertyBased, nil)
			if err != nil {
				t.Fatalf("ParseDocument() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, groups[0].Badge); diff != "" {
				t.Errorf("group badge mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.want, groups[0].Items[0].Badge); diff != "" {
				t.Errorf("item badge mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseOptionalFlagsAndLists(t *testing.T) {
	doc := document(group("g", "G", `"IsSpecialSection":true,"HideGroup":true,"IsSingleGroup":true,"IsExpanded":true`,
		item("a", `"HideItem":true,"HideNavigationViewItem":true,"HideSourceCodeAndRelatedControls":true,"Docs":[{"Title":"Doc1","Uri":"https://a"},{"Title":"Doc2","Uri":"https://b"}],"RelatedControls":["b","missing"]`),
		item("b", ""),
	))
	groups, err := ParseDocument([]byte(doc), PropertyBased, nil)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	g := groups[0]
	if !g.IsSpecialSection || !g.HideGroup || !g.IsSingleGroup || !g.IsExpanded {
		t.Errorf("group flags = %+v, want all true", g)
	}

	a, b := g.Items[0], g.Items[1]
	if !a.HideItem || !a.HideNavigationViewItem || !a.HideSourceCodeAndRelatedControls {
		t.Errorf("item flags = %+v, want all hide flags true", a)
	}
	if diff := cmp.Diff([]DocLink{{Title: "Doc1", URI: "https://a"}, {Title: "Doc2", URI: "https://b"}}, a.Docs); diff != "" {
		t.Errorf("Docs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b", "missing"}, a.RelatedControls); diff != "" {
		t.Errorf("RelatedControls mismatch (-want +got):\n%s", diff)
	}
	if b.Docs == nil || len(b.Docs) != 0 {
		t.Errorf("Docs = %#v, want empty non-nil slice", b.Docs)
	}
	if b.RelatedControls == nil || len(b.RelatedControls) != 0 {
		t.Errorf("RelatedControls = %#v, want empty non-nil slice", b.RelatedControls)
	}
	if b.HideItem || b.IsNew || b.IncludedInBuild || b.Badge != nil {
		t.Errorf("item b = %+v, want defaults", b)
	}
}

func TestParseInclusionModes(t *testing.T) {
	doc := document(group("g", "G", "",
		item("ButtonPage", `"IncludedInBuild":true`),
		item("MissingPage", `"IncludedInBuild":true`),
		item("CheckBoxPage", ""),
	))
	checker := InclusionCheckerFunc(func(module, typeName string) bool {
		return module == "ns" && (typeName == "ButtonPage" || typeName == "CheckBoxPage")
	})

	tests := []struct {
		name    string
		mode    InclusionMode
		checker InclusionChecker
		want    []bool
	}{
		{name: "property copies flag", mode: PropertyBased, checker: checker, want: []bool{true, true, false}},
		{name: "reflection asks checker", mode: ReflectionBased, checker: checker, want: []bool{true, false, true}},
		{name: "reflection without checker", mode: ReflectionBased, checker: nil, want: []bool{false, false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := ParseDocument([]byte(doc), tt.mode, tt.checker)
			if err != nil {
				t.Fatalf("ParseDocument() error = %v", err)
			}
			var got []bool
			for _, i := range groups[0].Items {
				got = append(got, i.IncludedInBuild)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("IncludedInBuild mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseMalformedDocument(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantField string
	}{
		{name: "not json", doc: `{"Groups":[`, wantField: ""},
		{name: "missing Groups", doc: `{}`, wantField: "Groups"},
		{name: "null group", doc: `{"Groups":[null]}`, wantField: "Groups[0]"},
		{
			name:      "group missing ApiNamespace",
			doc:       `{"Groups":[{"UniqueId":"g","Title":"G",` + groupFields + `}]}`,
			wantField: "Groups[0].ApiNamespace",
		},
		{
			name:      "item missing Content",
			doc:       document(group("g", "G", "", item("ok", ""), `{"UniqueId":"i","Title":"I",`+groupFields+`,"ApiNamespace":"ns"}`)),
			wantField: "Groups[0].Items[1].Content",
		},
		{
			name:      "doc link missing Uri",
			doc:       document(group("g", "G", "", item("i", `"Docs":[{"Title":"x"}]`))),
			wantField: "Groups[0].Items[0].Docs[0].Uri",
		},
		{
			name:      "null related control",
			doc:       document(group("g", "G", "", item("i", `"RelatedControls":[null]`))),
			wantField: "Groups[0].Items[0].RelatedControls[0]",
		},
		{
			name:      "wrong type",
			doc:       document(group("g", "G", `"IsExpanded":"yes"`)),
			wantField: "Groups[0].IsExpanded",
		},
		{
			name:      "lowercase root key",
			doc:       `{"groups":[]}`,
			wantField: "Groups",
		},
		{
			name:      "lowercase content does not satisfy Content",
			doc:       document(group("g", "G", "", `{"UniqueId":"i","Title":"I",`+groupFields+`,"ApiNamespace":"ns","content":"c"}`)),
			wantField: "Groups[0].Items[0].Content",
		},
		{
			name:      "badge width beyond int32",
			doc:       document(group("g", "G", "", item("i", `"InfoBadge":{"BadgeWidth":1e30}`))),
			wantField: "Groups[0].Items[0].InfoBadge.BadgeWidth",
		},
		{
			name:      "badge height below int32",
			doc:       document(group("g", "G", `"InfoBadge":{"BadgeHeight":-2147483649}`)),
			wantField: "Groups[0].InfoBadge.BadgeHeight",
		},
		{
			name:      "null required string",
			doc:       document(group("g", "G", "", item("i", `"Content":null`))),
			wantField: "Groups[0].Items[0].Content",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := ParseDocument([]byte(tt.doc), PropertyBased, nil)
			if err == nil {
				t.Fatalf("ParseDocument() = %v, want error", groups)
			}
			if groups != nil {
				t.Errorf("ParseDocument() returned %d groups alongside error", len(groups))
			}
			if !errors.Is(err, ErrMalformedDocument) {
				t.Errorf("errors.Is(%v, ErrMalformedDocument) = false", err)
			}
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("error %T is not a *SchemaError", err)
			}
			if schemaErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", schemaErr.Field, tt.wantField)
			}
		})
	}
}

func TestParseKeysAreCaseSensitive(t *testing.T) {
	groups, err := ParseDocument([]byte(document(group("g", "G", "", item("i", `"title":"shadow","isNew":true`)))), PropertyBased, nil)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	got := groups[0].Items[0]
	if got.Title != "i" {
		t.Errorf("Title = %q, want %q", got.Title, "i")
	}
	if got.IsNew || got.BadgeText != "" {
		t.Errorf("IsNew = %v, BadgeText = %q; lowercase isNew must be ignored", got.IsNew, got.BadgeText)
	}
}

func TestParseBadgeSizeAtInt32Limits(t *testing.T) {
	groups, err := ParseDocument([]byte(document(group("g", "G", `"InfoBadge":{"BadgeWidth":2147483647,"BadgeHeight":-2147483648}`))), PropertyBased, nil)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	if b := groups[0].Badge; b.Width != math.MaxInt32 || b.Height != math.MinInt32 {
		t.Errorf("badge size = %dx%d, want %dx%d", b.Width, b.Height, math.MaxInt32, math.MinInt32)
	}
}

func TestParseDocumentWithBOM(t *testing.T) {
	groups, err := ParseDocument([]byte("\xef\xbb\xbf"+document(group("g", "G", ""))), PropertyBased, nil)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}
	if len(groups) != 1 || groups[0].Items == nil {
		t.Errorf("groups = %+v, want one group with empty items", groups)
	}
}

func TestParseInclusionMode(t *testing.T) {
	for in, want := range map[string]InclusionMode{"property": PropertyBased, "Reflection": ReflectionBased, " PropertyBased ": PropertyBased} {
		got, err := ParseInclusionMode(in)
		if err != nil || got != want {
			t.Errorf("ParseInclusionMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseInclusionMode("assembly"); err == nil {
		t.Error("ParseInclusionMode(\"assembly\") succeeded, want error")
	}
}
