// Package catalog loads the control catalog document into memory and answers lookups over it.
//
// A catalog document is a JSON object with a Groups array; each group carries display metadata
// and an ordered Items array describing one demo page each. The Store reads the document through
// an injected TextLoader the first time any lookup runs and keeps the parsed groups for the life
// of the process:
//
//	store := catalog.NewStore(loader, catalog.WithInclusionChecker(registry))
//	item, err := store.GetItem(ctx, "ButtonPage", "DataModel/ControlInfoData.json", catalog.PropertyBased)
//
// Single-result lookups return nil rather than an error when nothing, or more than one record,
// matches.
package catalog
