package reconcile

import (
	"scene-sync/core/element"
)

// Summary counts how each id of the union was resolved.
type Summary struct {
	// TotalElements is the number of distinct ids in the merged scene.
	TotalElements int `json:"total_elements"`
	// LocalOnly counts ids that exist only in the local scene.
	LocalOnly int `json:"local_only"`
	// RemoteOnly counts ids that exist only in the remote scene.
	RemoteOnly int `json:"remote_only"`
	// LocalWins counts shared ids resolved to the local element.
	LocalWins int `json:"local_wins"`
	// RemoteWins counts shared ids resolved to the remote element.
	RemoteWins int `json:"remote_wins"`
	// Tombstones counts deleted elements kept in the merged scene.
	Tombstones int `json:"tombstones"`
}

// Reconcile merges local and remote into one scene.
func Reconcile(local, remote element.Scene) element.Scene {
	merged, _ := Merge(local, remote)
	return merged
}

// Merge merges local and remote and reports how each id was resolved.
func Merge(local, remote element.Scene) (element.Scene, Summary) {
	localIndex := buildIndex(local)
	remoteIndex := buildIndex(remote)

	var summary Summary
	merged := make(element.Scene, 0, len(localIndex)+len(remoteIndex))
	emitted := make(map[string]struct{}, len(localIndex)+len(remoteIndex))

	// Local order first
	for _, el := range local {
		if _, done := emitted[el.ID]; done {
			continue
		}
		emitted[el.ID] = struct{}{}

		localEl := localIndex[el.ID]
		remoteEl, shared := remoteIndex[el.ID]
		switch {
		case !shared:
			merged = append(merged, localEl)
			summary.LocalOnly++
		case Wins(remoteEl.Header, localEl.Header):
			merged = append(merged, remoteEl)
			summary.RemoteWins++
		default:
			merged = append(merged, localEl)
			summary.LocalWins++
		}
	}

	// Then remote-only ids in remote order
	for _, el := range remote {
		if _, done := emitted[el.ID]; done {
			continue
		}
		emitted[el.ID] = struct{}{}
		merged = append(merged, remoteIndex[el.ID])
		summary.RemoteOnly++
	}

	for _, el := range merged {
		if el.IsDeleted {
			summary.Tombstones++
		}
	}
	summary.TotalElements = len(merged)

	return merged, summary
}

// Wins reports whether a strictly supersedes b. Two headers that are equal in
// every compared field do not supersede each other.
func Wins(a, b element.Header) bool {
	if a.Version != b.Version {
		return a.Version > b.Version
	}
	if a.VersionNonce != b.VersionNonce {
		return a.VersionNonce > b.VersionNonce
	}
	if a.IsDeleted != b.IsDeleted {
		return a.IsDeleted
	}
	return a.Updated > b.Updated
}

// buildIndex maps ids to elements. Duplicate ids inside one scene collapse to
// their winning representation.
func buildIndex(scene element.Scene) map[string]element.Element {
	index := make(map[string]element.Element, len(scene))
	for _, el := range scene {
		if existing, ok := index[el.ID]; ok && !Wins(el.Header, existing.Header) {
			continue
		}
		index[el.ID] = el
	}
	return index
}
