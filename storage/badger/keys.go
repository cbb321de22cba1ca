package badger

import "fmt"

// Snapshot artifact names, appended to the caller's prefix.
const (
	entitiesArtifact = "entities"
	mappingArtifact  = "mapping"
	indexArtifact    = "index"
)

// makeSnapshotKey generates the key of one snapshot artifact.
// Format: prefix:artifact
func makeSnapshotKey(prefix, artifact string) []byte {
	return []byte(fmt.Sprintf("%s:%s", prefix, artifact))
}

// snapshotKeys returns the keys of all artifacts for prefix in a fixed order.
func snapshotKeys(prefix string) [3][]byte {
	return [3][]byte{
		makeSnapshotKey(prefix, entitiesArtifact),
		makeSnapshotKey(prefix, mappingArtifact),
		makeSnapshotKey(prefix, indexArtifact),
	}
}
