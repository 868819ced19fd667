// Package extract turns the three analysis documents into partial component
// records.
//
// Each extractor walks one parsed document and builds the lookup tables that
// document needs (component id to metric id, metric id to attribute bundle,
// CAD name to metric id), then joins them into one partial
// cadpost.ComponentRecord per component id. The extractors never share record
// fields, so their results can be merged in any order by package merge.
//
// Required structure (ids, matrix cells, X/Y/Z attributes) that is missing or
// non-numeric is reported as a *cadpost.DocumentError. Optional elements
// (CG, inertia tensors, scalars, units, points) are simply left out.
package extract
