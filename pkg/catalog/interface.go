package catalog

import "context"

// TextLoader turns a logical relative document path into raw document text.
type TextLoader interface {
	LoadText(ctx context.Context, path string) (string, error)
}

// TextLoaderFunc adapts a plain function to TextLoader.
type TextLoaderFunc func(ctx context.Context, path string) (string, error)

func (f TextLoaderFunc) LoadText(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}

// ServiceInterface is the read API consumers use to populate navigation and content panels.
// Every method populates the catalog on first use.
type ServiceInterface interface {
	ListGroups(ctx context.Context, path string, mode InclusionMode) ([]*Group, error)
	GetGroup(ctx context.Context, uniqueID, path string, mode InclusionMode) (*Group, error)
	GetItem(ctx context.Context, uniqueID, path string, mode InclusionMode) (*Item, error)
	GetGroupFromItem(ctx context.Context, uniqueID, path string, mode InclusionMode) (*Group, error)

	EnsurePopulated(ctx context.Context, path string, mode InclusionMode) error
	// Groups returns a snapshot of the stored groups, not a live view: the slice is a copy
	// taken under the store lock, so later populations do not show up in it and appending
	// to or reordering it leaves the store untouched. The *Group records are shared.
	Groups() []*Group
	Populated() bool
	GetVersion() DataVersion
}
