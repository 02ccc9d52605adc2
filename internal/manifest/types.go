package manifest

// File names of the manifests on disk.
const (
	AgentFile   = "agent.json"
	PackageFile = "package.json"
)

// AgentManifest summarizes one synchronized agent. Toolboxes keep discovery
// order; Personality lists the personality document file names.
type AgentManifest struct {
	Name        string   `json:"name"`
	Toolboxes   []string `json:"toolboxes"`
	Personality []string `json:"personality"`
}

// PackageManifest holds the fields the bundles index reads from a bundle's
// package.json. Unknown fields are ignored.
type PackageManifest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
}

// Kind selects the schema a document is validated against.
type Kind string

const (
	KindAgent   Kind = "agent"
	KindPackage Kind = "package"
)
