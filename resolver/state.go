package resolver

// State is a step of a resolution.
type State int

const (
	Start State = iota
	PlayLinkResolved
	EmbedResolved
	ManifestFound
	Assembled
	Failed
)

func (s State) String() string {
	switch s {
	case Start:
		return "start"
	case PlayLinkResolved:
		return "play-link-resolved"
	case EmbedResolved:
		return "embed-resolved"
	case ManifestFound:
		return "manifest-found"
	case Assembled:
		return "assembled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Hop names used in extraction errors.
const (
	HopPlayLink = "play-link"
	HopEmbed    = "embed"
	HopManifest = "manifest"
)

// Observer is notified of every transition together with the URL or reason it carries.
type Observer func(state State, detail string)
