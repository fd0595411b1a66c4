// Package enrich implements the enrichment pipeline: it fills an
// apidoc fragment field by field from one or more metadata sources.
//
// # Sources
//
// A source is any value implementing one or more capability interfaces
// (ResourceEnricher, RequestEnricher, PropertyEnricher, SecurityEnricher,
// ActionEnricher). CapabilitiesOf discovers them by type assertion; a
// capability the source lacks is treated as "no data".
//
// # Managers
//
// The managers decide, per field, whether a source is consulted and how
// its answer is merged:
//
//	props := enrich.NewPropertyManager(caps.Property)
//	resources := enrich.NewResourceManager(caps.Resource, props)
//	actions := enrich.NewActionManager(caps.Request, caps.Action)
//	requests := enrich.NewRequestManager(caps.Request, caps.Security, actions, resources.EnrichResource)
//
//	requests.EnrichRequest(doc, op)
//
// Scalar fields are filled only while empty. Collection fields follow the
// Policy: SetIfEmpty fills empty collections only, Union merges the
// computed values into populated ones. Every collection stays distinct.
//
// # Strategy
//
// The process-wide strategy is read by managers built without WithPolicy:
//
//	enrich.WithStrategy(enrich.Union, func() {
//	    requests.EnrichRequest(doc, op)
//	})
//
// Hosts enriching concurrently should pass an explicit Policy instead:
//
//	enrich.NewRequestManager(req, sec, nil, nil, enrich.WithPolicy(enrich.Union))
//
// Managers never fail on missing data. A nil source, nil manager or nil
// fragment makes the corresponding step a no-op.
package enrich
