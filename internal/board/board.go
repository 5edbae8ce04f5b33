package board

import (
	"math/rand"
	"time"

	"pinboard-cli/internal/ids"
)

type PinKind string

const (
	KindNote       PinKind = "note"
	KindImage      PinKind = "image"
	KindList       PinKind = "list"
	KindLink       PinKind = "link"
	KindAttachment PinKind = "attachment"
)

const (
	MinPinSize = 120
	MaxPinSize = 900

	MinZoom = 0.5
	MaxZoom = 2.6
)

const (
	DefaultPinColor   = "#0f172a"
	DefaultGroupColor = "#a855f7"
	DefaultWireColor  = "#38bdf8"
)

// Palette used for freshly created pins, labels and groups.
var Palette = []string{"#22c55e", "#38bdf8", "#eab308", "#f97316", "#a855f7", "#ec4899"}

type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

type Attachment struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Size       int64  `json:"size"`
	URL        string `json:"url"`
	UploadedAt string `json:"uploadedAt"`
}

type LinkMetadata struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Favicon     string `json:"favicon,omitempty"`
}

// Pin is the atomic placeable object on a board. X/Y are the top-left corner
// in canvas-logical space; Width/Height are logical and clamped to
// [MinPinSize, MaxPinSize]. GroupID is a denormalized back-pointer; the
// authoritative membership list lives on Group.PinIDs ("" means ungrouped).
type Pin struct {
	ID            string        `json:"id"`
	Kind          PinKind       `json:"kind"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	ImageURL      string        `json:"imageUrl,omitempty"`
	X             float64       `json:"x"`
	Y             float64       `json:"y"`
	Width         float64       `json:"width"`
	Height        float64       `json:"height"`
	ZIndex        int64         `json:"zIndex"`
	Color         string        `json:"color"`
	GroupID       string        `json:"groupId,omitempty"`
	CategoryIDs   []string      `json:"categoryIds,omitempty"`
	LabelIDs      []string      `json:"labelIds,omitempty"`
	Locked        bool          `json:"locked,omitempty"`
	NaturalWidth  float64       `json:"naturalWidth,omitempty"`
	NaturalHeight float64       `json:"naturalHeight,omitempty"`
	Attachments   []Attachment  `json:"attachments,omitempty"`
	LinkMetadata  *LinkMetadata `json:"linkMetadata,omitempty"`
}

type Group struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Color  string   `json:"color"`
	PinIDs []string `json:"pinIds"`
}

// Wire connects two pins. The pair is undirected for uniqueness purposes:
// at most one wire may exist between any two pins, and self-loops are
// forbidden. Deleting either endpoint deletes the wire.
type Wire struct {
	ID        string `json:"id"`
	FromPinID string `json:"fromPinId"`
	ToPinID   string `json:"toPinId"`
	Color     string `json:"color"`
}

// State is the full serializable board document and the unit of both
// persistence and undo/redo snapshotting.
type State struct {
	Pins     []Pin    `json:"pins"`
	Groups   []Group  `json:"groups"`
	Wires    []Wire   `json:"wires,omitempty"`
	Viewport Viewport `json:"viewport"`
}

func Empty() State {
	return State{
		Pins:     []Pin{},
		Groups:   []Group{},
		Viewport: Viewport{X: 0, Y: 0, Zoom: 1},
	}
}

// FindPin returns a pointer into the state's pin slice, or nil. The
// value receiver keeps it callable on temporaries (Present(), State());
// the returned pointer still aliases the caller's backing array.
func (s State) FindPin(id string) *Pin {
	for i := range s.Pins {
		if s.Pins[i].ID == id {
			return &s.Pins[i]
		}
	}
	return nil
}

func (s State) FindGroup(id string) *Group {
	for i := range s.Groups {
		if s.Groups[i].ID == id {
			return &s.Groups[i]
		}
	}
	return nil
}

func RandomColor() string {
	return Palette[rand.Intn(len(Palette))]
}

func defaultTitle(kind PinKind) string {
	switch kind {
	case KindImage:
		return "Image"
	case KindList:
		return "List"
	case KindLink:
		return "Link"
	case KindAttachment:
		return "Attachment"
	default:
		return "Note"
	}
}

// DefaultSize returns the creation-time size for a kind. Rehydration of
// stored pins uses the generic 220x160 default instead (see Sanitize).
func DefaultSize(kind PinKind) (w, h float64) {
	switch kind {
	case KindImage:
		return 280, 220
	case KindLink:
		return 320, 200
	default:
		return 240, 180
	}
}

// NewPin creates a pin of the given kind placed near the centre of the
// visible viewport, with a small random offset so stacked creations stay
// visible. ZIndex comes from the wall clock so newer pins paint above
// older ones by default.
func NewPin(kind PinKind, vp Viewport) Pin {
	offset := rand.Float64() * 120
	w, h := DefaultSize(kind)
	return Pin{
		ID:       ids.New("pin"),
		Kind:     kind,
		Title:    defaultTitle(kind),
		Content:  "",
		X:        -vp.X + 400 + offset,
		Y:        -vp.Y + 300 + offset,
		Width:    w,
		Height:   h,
		ZIndex:   time.Now().UnixMilli(),
		Color:    RandomColor(),
		LabelIDs: []string{},
	}
}

// ClampSize bounds a pin dimension to the legal logical range.
func ClampSize(v float64) float64 {
	if v < MinPinSize {
		return MinPinSize
	}
	if v > MaxPinSize {
		return MaxPinSize
	}
	return v
}
