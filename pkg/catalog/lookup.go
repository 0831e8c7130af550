package catalog

import "context"

// ListGroups returns every stored group in insertion order.
func (s *Store) ListGroups(ctx context.Context, path string, mode InclusionMode) ([]*Group, error) {
	if err := s.EnsurePopulated(ctx, path, mode); err != nil {
		return nil, err
	}
	return s.Groups(), nil
}

// GetGroup returns the group with the given id, or nil when zero or several groups match.
func (s *Store) GetGroup(ctx context.Context, uniqueID, path string, mode InclusionMode) (*Group, error) {
	if err := s.EnsurePopulated(ctx, path, mode); err != nil {
		return nil, err
	}

	var match *Group
	for _, g := range s.Groups() {
		if g.UniqueID != uniqueID {
			continue
		}
		if match != nil {
			return nil, nil
		}
		match = g
	}
	return match, nil
}

// GetItem returns the first item with the given id, scanning groups then items in order.
func (s *Store) GetItem(ctx context.Context, uniqueID, path string, mode InclusionMode) (*Item, error) {
	if err := s.EnsurePopulated(ctx, path, mode); err != nil {
		return nil, err
	}

	for _, g := range s.Groups() {
		for _, item := range g.Items {
			if item.UniqueID == uniqueID {
				return item, nil
			}
		}
	}
	return nil, nil
}

// GetGroupFromItem returns the single group containing an item with the given id.
// It returns nil when no group or more than one group contains such an item.
func (s *Store) GetGroupFromItem(ctx context.Context, uniqueID, path string, mode InclusionMode) (*Group, error) {
	if err := s.EnsurePopulated(ctx, path, mode); err != nil {
		return nil, err
	}

	var match *Group
	for _, g := range s.Groups() {
		if !g.contains(uniqueID) {
			continue
		}
		if match != nil {
			return nil, nil
		}
		match = g
	}
	return match, nil
}

func (g *Group) contains(itemID string) bool {
	for _, item := range g.Items {
		if item.UniqueID == itemID {
			return true
		}
	}
	return false
}
