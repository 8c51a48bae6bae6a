package element

import (
	"encoding/json"
	"fmt"
)

// Scene is an ordered collection of elements. Order is rendering stack order.
type Scene []Element

// Version summarizes the scene as the sum of its element versions, tombstones
// included. Any edit to any element changes it.
func (s Scene) Version() int64 {
	var v int64
	for _, el := range s {
		v += el.Version
	}
	return v
}

// Validate checks that ids are unique within the scene.
func (s Scene) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for _, el := range s {
		if _, dup := seen[el.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidElement, el.ID)
		}
		seen[el.ID] = struct{}{}
	}
	return nil
}

// Visible returns the elements that are not tombstones.
func (s Scene) Visible() Scene {
	out := make(Scene, 0, len(s))
	for _, el := range s {
		if !el.IsDeleted {
			out = append(out, el)
		}
	}
	return out
}

// FileIDs returns the distinct file ids referenced by live image elements,
// in scene order.
func (s Scene) FileIDs() []string {
	var ids []string
	seen := make(map[string]struct{})
	for _, el := range s {
		if el.IsDeleted {
			continue
		}
		img, ok := el.Props.(*Image)
		if !ok || img.FileID == nil || *img.FileID == "" {
			continue
		}
		if _, dup := seen[*img.FileID]; dup {
			continue
		}
		seen[*img.FileID] = struct{}{}
		ids = append(ids, *img.FileID)
	}
	return ids
}

// Get returns the element with the given id.
func (s Scene) Get(id string) (Element, bool) {
	for _, el := range s {
		if el.ID == id {
			return el, true
		}
	}
	return Element{}, false
}

// Encode serializes the scene as a JSON array. A nil scene encodes as [].
func (s Scene) Encode() ([]byte, error) {
	if s == nil {
		s = Scene{}
	}
	return json.Marshal([]Element(s))
}

// Decode parses and validates a JSON array of elements.
func Decode(data []byte) (Scene, error) {
	var elements []Element
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, err
	}

	scene := Scene(elements)
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return scene, nil
}
