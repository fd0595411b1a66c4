// Package apidoc defines the documentation model produced by the enrichment
// pipeline and served by package apispec.
//
// One ApiResourceDocumentation describes one API operation. It starts empty
// (or pre-populated from user overrides) and is mutated in place by the
// enricher managers in package enrich. A field left at its zero value means
// nothing was known about it.
//
// # Set Semantics
//
// Every collection field on the model holds distinct elements. The enricher
// managers deduplicate on assignment; values loaded from overrides are
// deduplicated by Normalize.
//
// # Filtering
//
// ApiDocumentation.Filter narrows a document to the resources matching a
// SpecRequest:
//
//	doc.Filter(apidoc.SpecRequest{Tags: []string{"pets"}})
package apidoc
