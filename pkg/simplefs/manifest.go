package simplefs

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/gammazero/toposort"
	"gopkg.in/yaml.v3"
)

// ManifestVersion is written into every manifest produced by Snapshot.
const ManifestVersion = "1"

// Format selects the encoding used by Manifest.Marshal.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Manifest is a declarative description of a tree: directories and files
// with their text content.
type Manifest struct {
	Metadata ManifestMetadata `json:"metadata" yaml:"metadata"`
	Entries  []Entry          `json:"entries" yaml:"entries"`
}

// ManifestMetadata contains information about the manifest
type ManifestMetadata struct {
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// Entry is one directory (path ending in "/") or file of a manifest.
type Entry struct {
	Path    Path   `json:"path" yaml:"path"`
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
}

// ManifestError reports a manifest that cannot be applied.
type ManifestError struct {
	Path   Path
	Reason string
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("invalid manifest entry %s: %s", e.Path, e.Reason)
}

// LoadManifest decodes a YAML or JSON manifest.
func LoadManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if m.Metadata.Version != "" && m.Metadata.Version != ManifestVersion {
		return nil, fmt.Errorf("unsupported manifest version %q", m.Metadata.Version)
	}
	return &m, nil
}

// Marshal encodes the manifest in the given format.
func (m *Manifest) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatYAML, "":
		return yaml.Marshal(m)
	case FormatJSON:
		return json.MarshalIndent(m, "", "  ")
	default:
		return nil, fmt.Errorf("unknown manifest format %q", format)
	}
}

// Snapshot describes everything below root, root itself excluded, as a
// manifest whose entries are in walk order.
func Snapshot(fsys FileSystem, root Path) (*Manifest, error) {
	m := &Manifest{Metadata: ManifestMetadata{Version: ManifestVersion}}
	err := Walk(fsys, root, func(p Path, err error) error {
		if err != nil {
			return err
		}
		if p == root && p.IsDirectory() {
			return nil
		}
		entry := Entry{Path: p}
		if p.IsFile() {
			if entry.Content, err = fsys.ReadAllText(p); err != nil {
				return err
			}
		}
		m.Entries = append(m.Entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot %s: %w", root, err)
	}
	return m, nil
}

// Plan validates the manifest and returns the paths to create, parents
// before children. Directories implied by an entry are included.
func (m *Manifest) Plan() ([]Path, error) {
	nodes := make(map[string]Path)
	files := make(map[Path]bool)

	for _, entry := range m.Entries {
		p := entry.Path
		if p.IsRoot() {
			continue
		}
		if p.IsDirectory() && entry.Content != "" {
			return nil, &ManifestError{Path: p, Reason: "directory entries cannot have content"}
		}
		if p.IsFile() {
			if files[p] {
				return nil, &ManifestError{Path: p, Reason: "duplicate file entry"}
			}
			files[p] = true
		}
		for current := p; !current.IsRoot(); current = current.Parent() {
			nodes[current.String()] = current
		}
	}

	for file := range files {
		if _, clash := nodes[file.AsDirectory().String()]; clash {
			return nil, &ManifestError{Path: file, Reason: "path is used both as a file and as a directory"}
		}
	}
	if len(nodes) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(nodes))
	for key := range nodes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	edges := make([]toposort.Edge, 0, len(keys))
	for _, key := range keys {
		// parent -> child: the parent must be created first
		edges = append(edges, toposort.Edge{nodes[key].Parent().String(), key})
	}

	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return nil, fmt.Errorf("failed to order manifest entries: %w", err)
	}

	plan := make([]Path, 0, len(nodes))
	for _, item := range sorted {
		key, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected type in topological sort result: %T", item)
		}
		if p, ok := nodes[key]; ok {
			plan = append(plan, p)
		}
	}
	return plan, nil
}

// Apply creates every directory and file of the manifest in fsys. Existing
// directories are kept and existing files are overwritten. A failure stops
// the run and leaves earlier entries in place.
func Apply(fsys FileSystem, m *Manifest) error {
	plan, err := m.Plan()
	if err != nil {
		return err
	}

	content := make(map[Path]string, len(m.Entries))
	for _, entry := range m.Entries {
		if entry.Path.IsFile() {
			content[entry.Path] = entry.Content
		}
	}

	for _, p := range plan {
		logger.Debug().Str("path", p.String()).Msg("applying manifest entry")
		if p.IsDirectory() {
			err = fsys.CreateDirectory(p)
		} else {
			err = fsys.WriteTextFile(p, content[p])
		}
		if err != nil {
			return fmt.Errorf("failed to apply manifest entry %s: %w", p, err)
		}
	}
	logger.Info().Int("entries", len(plan)).Msg("manifest applied")
	return nil
}
