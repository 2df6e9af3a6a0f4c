package ir

// Version constants recorded with every stored run.
const (
	// SchemaVersion is the version of the result model as persisted.
	SchemaVersion = "1"

	// EngineVersion is the ordeal engine version.
	EngineVersion = "0.1.0"
)
