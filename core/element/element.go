package element

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidElement is returned when an element fails validation at decode time.
var ErrInvalidElement = errors.New("invalid element")

// Header is the identity and version information shared by every element.
// Reconciliation only ever reads these fields.
type Header struct {
	// ID is the stable identity of the element across edits.
	ID string `json:"id"`
	// Type is the element kind.
	Type Kind `json:"type"`
	// Version increases on every edit of the element.
	Version int64 `json:"version"`
	// VersionNonce is a random tie-breaker for equal versions.
	VersionNonce int64 `json:"versionNonce"`
	// IsDeleted marks a tombstone.
	IsDeleted bool `json:"isDeleted"`
	// Updated is the last edit time in milliseconds since the epoch.
	Updated int64 `json:"updated"`
}

// Roundness describes corner rounding.
type Roundness struct {
	Type  int      `json:"type"`
	Value *float64 `json:"value,omitempty"`
}

// BoundElement references an element bound to this one (arrows, labels).
type BoundElement struct {
	ID   string `json:"id"`
	Type Kind   `json:"type"`
}

// Geometry holds position and style fields common to all kinds.
type Geometry struct {
	X               float64        `json:"x"`
	Y               float64        `json:"y"`
	Width           float64        `json:"width"`
	Height          float64        `json:"height"`
	Angle           float64        `json:"angle"`
	StrokeColor     string         `json:"strokeColor"`
	BackgroundColor string         `json:"backgroundColor"`
	FillStyle       string         `json:"fillStyle"`
	StrokeWidth     float64        `json:"strokeWidth"`
	StrokeStyle     string         `json:"strokeStyle"`
	Roughness       float64        `json:"roughness"`
	Opacity         float64        `json:"opacity"`
	GroupIDs        []string       `json:"groupIds"`
	FrameID         *string        `json:"frameId"`
	Index           *string        `json:"index"`
	Roundness       *Roundness     `json:"roundness"`
	Seed            int64          `json:"seed"`
	BoundElements   []BoundElement `json:"boundElements"`
	Link            *string        `json:"link"`
	Locked          bool           `json:"locked"`
	CustomData      map[string]any `json:"customData,omitempty"`
}

// Element is a validated drawable primitive.
type Element struct {
	Header
	Geometry
	// Props is the kind-specific payload. Props.Kind() always equals Header.Type.
	Props Props `json:"-"`

	// extra holds members no variant models (image crop, elbow arrow
	// segments, ...). They are written back unchanged.
	extra map[string]json.RawMessage
}

// New returns a version 1 element of kind k with an empty payload.
func New(k Kind, id string) Element {
	return Element{
		Header:   Header{ID: id, Type: k, Version: 1},
		Geometry: Geometry{Opacity: 100, StrokeWidth: 1},
		Props:    newProps(k),
	}
}

type flatElement struct {
	Header
	Geometry
}

// MarshalJSON writes the flat wire shape: header, geometry and payload fields
// side by side in one object.
func (e Element) MarshalJSON() ([]byte, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}

	base, err := json.Marshal(flatElement{Header: e.Header, Geometry: e.Geometry})
	if err != nil {
		return nil, err
	}

	props, err := json.Marshal(e.Props)
	if err != nil {
		return nil, err
	}

	return withMembers(mergeObjects(base, props), e.extra)
}

// UnmarshalJSON decodes and validates an element from its flat wire shape.
func (e *Element) UnmarshalJSON(data []byte) error {
	var flat flatElement
	if err := json.Unmarshal(data, &flat); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidElement, err)
	}

	props := newProps(flat.Type)
	if props == nil {
		return fmt.Errorf("%w: unknown type %q (id %q)", ErrInvalidElement, flat.Type, flat.ID)
	}
	if err := json.Unmarshal(data, props); err != nil {
		return fmt.Errorf("%w: %s %q: %v", ErrInvalidElement, flat.Type, flat.ID, err)
	}

	decoded := Element{Header: flat.Header, Geometry: flat.Geometry, Props: props}
	known, err := decoded.MarshalJSON()
	if err != nil {
		return err
	}
	if decoded.extra, err = unknownMembers(data, known); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidElement, err)
	}

	*e = decoded
	return nil
}

func (e Element) validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidElement)
	}
	if !e.Type.IsValid() {
		return fmt.Errorf("%w: unknown type %q (id %q)", ErrInvalidElement, e.Type, e.ID)
	}
	if e.Version < 0 {
		return fmt.Errorf("%w: negative version %d (id %q)", ErrInvalidElement, e.Version, e.ID)
	}
	if e.Props == nil || e.Props.Kind() != e.Type {
		return fmt.Errorf("%w: payload does not match type %q (id %q)", ErrInvalidElement, e.Type, e.ID)
	}
	return nil
}

// mergeObjects splices the members of JSON object b into JSON object a.
func mergeObjects(a, b []byte) []byte {
	b = bytes.TrimSpace(b)
	if len(b) <= 2 || string(b) == "null" {
		return a
	}

	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a[:len(a)-1]...)
	out = append(out, ',')
	out = append(out, b[1:]...)
	return out
}
