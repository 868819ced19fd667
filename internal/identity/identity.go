// Package identity derives deterministic identifiers for analysis datasets.
package identity

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/vvka-141/cadpost/pkg/cadpost"
)

// NamespaceDataset is the UUID v5 namespace for dataset identities, derived
// from the URL namespace and "cadpost/dataset-identity/v1".
var NamespaceDataset = uuid.NewSHA1(uuid.NameSpaceURL, []byte("cadpost/dataset-identity/v1"))

// DatasetID creates a deterministic UUID v5 for a set of input documents.
//
// The name hashed under NamespaceDataset is one "name=checksum" line per
// input, sorted by lowercased document name, using the normalized checksum.
// Reformatting an input therefore keeps the id, while any change to its
// content produces a new one.
//
// Examples:
//   - same three documents scanned twice → same id
//   - one computed value changed → different id
func DatasetID(inputs []cadpost.InputFile) uuid.UUID {
	return uuid.NewSHA1(NamespaceDataset, []byte(canonicalName(inputs)))
}

func canonicalName(inputs []cadpost.InputFile) string {
	lines := make([]string, 0, len(inputs))
	for _, in := range inputs {
		lines = append(lines, strings.ToLower(in.Name)+"="+in.Checksum)
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}
