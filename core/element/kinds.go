package element

import "encoding/json"

// Kind identifies the element variant.
type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindDiamond   Kind = "diamond"
	KindEllipse   Kind = "ellipse"
	KindArrow     Kind = "arrow"
	KindLine      Kind = "line"
	KindFreedraw  Kind = "freedraw"
	KindText      Kind = "text"
	KindImage     Kind = "image"
	KindFrame     Kind = "frame"
)

// Kinds lists every supported element kind.
var Kinds = []Kind{
	KindRectangle, KindDiamond, KindEllipse,
	KindArrow, KindLine, KindFreedraw,
	KindText, KindImage, KindFrame,
}

// IsValid reports whether k is one of the supported kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindRectangle, KindDiamond, KindEllipse,
		KindArrow, KindLine, KindFreedraw,
		KindText, KindImage, KindFrame:
		return true
	default:
		return false
	}
}

// Props is the kind-specific payload of an element.
type Props interface {
	Kind() Kind
}

// newProps returns an empty payload for kind k.
func newProps(k Kind) Props {
	switch k {
	case KindRectangle:
		return &Rectangle{}
	case KindDiamond:
		return &Diamond{}
	case KindEllipse:
		return &Ellipse{}
	case KindArrow:
		return &Arrow{}
	case KindLine:
		return &Line{}
	case KindFreedraw:
		return &Freedraw{}
	case KindText:
		return &Text{}
	case KindImage:
		return &Image{}
	case KindFrame:
		return &Frame{}
	default:
		return nil
	}
}

// Rectangle has no fields beyond the shared geometry.
type Rectangle struct{}

func (*Rectangle) Kind() Kind { return KindRectangle }

// Diamond has no fields beyond the shared geometry.
type Diamond struct{}

func (*Diamond) Kind() Kind { return KindDiamond }

// Ellipse has no fields beyond the shared geometry.
type Ellipse struct{}

func (*Ellipse) Kind() Kind { return KindEllipse }

// Point is an [x, y] pair relative to the element origin.
type Point [2]float64

// Binding attaches a linear element endpoint to another element.
// Members such as fixedPoint or mode are carried through unchanged.
type Binding struct {
	ElementID string  `json:"elementId"`
	Focus     float64 `json:"focus"`
	Gap       float64 `json:"gap"`

	extra map[string]json.RawMessage
}

type plainBinding Binding

// MarshalJSON writes the modelled fields followed by any carried members.
func (b Binding) MarshalJSON() ([]byte, error) {
	out, err := json.Marshal(plainBinding(b))
	if err != nil {
		return nil, err
	}
	return withMembers(out, b.extra)
}

// UnmarshalJSON decodes a binding, keeping members it does not model.
func (b *Binding) UnmarshalJSON(data []byte) error {
	var plain plainBinding
	if err := json.Unmarshal(data, &plain); err != nil {
		return err
	}
	known, err := json.Marshal(plain)
	if err != nil {
		return err
	}
	extra, err := unknownMembers(data, known)
	if err != nil {
		return err
	}

	*b = Binding(plain)
	b.extra = extra
	return nil
}

// Linear holds the fields shared by arrows and lines.
type Linear struct {
	Points             []Point  `json:"points"`
	LastCommittedPoint *Point   `json:"lastCommittedPoint"`
	StartBinding       *Binding `json:"startBinding"`
	EndBinding         *Binding `json:"endBinding"`
	StartArrowhead     *string  `json:"startArrowhead"`
	EndArrowhead       *string  `json:"endArrowhead"`
}

// Arrow is a linear element that may carry arrowheads and bindings.
type Arrow struct {
	Linear
	Elbowed bool `json:"elbowed,omitempty"`
}

func (*Arrow) Kind() Kind { return KindArrow }

// Line is a linear element; closed lines form polygons.
type Line struct {
	Linear
	Polygon bool `json:"polygon,omitempty"`
}

func (*Line) Kind() Kind { return KindLine }

// Freedraw is a pen stroke.
type Freedraw struct {
	Points             []Point   `json:"points"`
	Pressures          []float64 `json:"pressures"`
	SimulatePressure   bool      `json:"simulatePressure"`
	LastCommittedPoint *Point    `json:"lastCommittedPoint"`
}

func (*Freedraw) Kind() Kind { return KindFreedraw }

// Text is a text block, optionally bound to a container element.
type Text struct {
	Text          string  `json:"text"`
	OriginalText  string  `json:"originalText"`
	FontSize      float64 `json:"fontSize"`
	FontFamily    int     `json:"fontFamily"`
	TextAlign     string  `json:"textAlign"`
	VerticalAlign string  `json:"verticalAlign"`
	ContainerID   *string `json:"containerId"`
	LineHeight    float64 `json:"lineHeight"`
	AutoResize    bool    `json:"autoResize"`
}

func (*Text) Kind() Kind { return KindText }

// Image references a binary file stored through the file store.
type Image struct {
	FileID *string    `json:"fileId"`
	Status string     `json:"status"`
	Scale  [2]float64 `json:"scale"`
}

func (*Image) Kind() Kind { return KindImage }

// Frame groups elements visually.
type Frame struct {
	Name *string `json:"name"`
}

func (*Frame) Kind() Kind { return KindFrame }
