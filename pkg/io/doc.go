// Package io reads relations and networks from JSON and writes analysis
// results back out.
//
// Relations come in two forms: a full boolean leq matrix, or a list of
// strict dominance pairs that gets closed transitively on load. Networks
// use a plain nodes/edges document. See [ReadRelation] and [ReadGraph] for
// the exact shapes.
package io
