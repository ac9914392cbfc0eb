package resource

// Kind identifies a resource type and fixes its path segment.
type Kind string

const (
	KindGroup     Kind = "group"
	KindApp       Kind = "app"
	KindDashboard Kind = "dashboard"
	KindTile      Kind = "tile"
	KindDataflow  Kind = "dataflow"
	KindDataset   Kind = "dataset"
	KindImport    Kind = "import"
)

// Segment returns the plural URL segment for the kind.
func (k Kind) Segment() string {
	switch k {
	case KindGroup:
		return "groups"
	case KindApp:
		return "apps"
	case KindDashboard:
		return "dashboards"
	case KindTile:
		return "tiles"
	case KindDataflow:
		return "dataflows"
	case KindDataset:
		return "datasets"
	case KindImport:
		return "imports"
	default:
		return string(k) + "s"
	}
}

// Parent qualifies an entity's address with an enclosing resource. Most
// kinds nest under a workspace (group); tiles nest under a dashboard.
type Parent struct {
	Kind Kind
	ID   string
}

// GroupParent returns a workspace scope, or nil when id is empty so that
// resolved-but-absent references fall through to the top-level path.
func GroupParent(id string) *Parent {
	if id == "" {
		return nil
	}
	return &Parent{Kind: KindGroup, ID: id}
}

// BuildPath returns the canonical root address of a single entity:
// [/{parentSegment}/{parentID}]/{kindSegment}/{id}. Sub-resource segments
// (/tiles, /users, ...) are appended by the owning operation, never here.
// The builder is pure concatenation: it performs no validation of the
// identifiers and no kind-compatibility checks on the parent.
func BuildPath(kind Kind, id string, parent *Parent) string {
	return CollectionPath(kind, parent) + "/" + id
}

// CollectionPath returns the list endpoint for a kind, parent-relative
// when a parent is supplied and top-level otherwise.
func CollectionPath(kind Kind, parent *Parent) string {
	if parent != nil {
		return "/" + parent.Kind.Segment() + "/" + parent.ID + "/" + kind.Segment()
	}
	return "/" + kind.Segment()
}
