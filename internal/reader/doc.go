// Package reader turns an analysis output directory into the consolidated
// component model.
//
// A Reader locates CADAssembly.xml, CADAssembly_metrics.xml and
// ComputedValues.xml, parses them, and merges their contributions in that
// fixed order. The result is a Data value that can be queried or rendered
// as canonical JSON:
//
//	r, err := reader.NewReader(dir, reader.WithParse())
//	if err != nil {
//	    return err
//	}
//	if err := r.CADData().Write("cad_data.json"); err != nil {
//	    return err
//	}
package reader
