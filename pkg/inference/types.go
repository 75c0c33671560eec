package inference

// Position classifies where a person stands in the frame, seen from the
// camera's point of view.
type Position string

// Screen positions.
const (
	PositionLeft   Position = "left"
	PositionCenter Position = "center"
	PositionRight  Position = "right"
)

// BoundingBox locates an object in source pixel units.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the area of the box in square pixels.
func (b BoundingBox) Area() float64 {
	return b.Width * b.Height
}

// CenterX returns the horizontal center of the box.
func (b BoundingBox) CenterX() float64 {
	return b.X + b.Width/2
}

// DetectedObject is one object reported by the inference service.
type DetectedObject struct {
	Label      string      `json:"label"`
	Confidence float64     `json:"confidence"`
	Box        BoundingBox `json:"bounding_box"`
}

// ResultFrame is one unit of streamed output from a single request.
// Frames are ephemeral; nothing outlives the request that produced them.
type ResultFrame struct {
	SourceWidth  int              `json:"source_width"`
	SourceHeight int              `json:"source_height"`
	Objects      []DetectedObject `json:"objects"`

	// Analysis carries the free-form nested classification payload produced
	// by the detailed profile. Its shape is not contractually fixed.
	Analysis map[string]any `json:"analysis,omitempty"`
}

// PersonRecord is a ranked person derived from a detection frame.
// Gender and Activity are empty until a detailed pass resolves them.
type PersonRecord struct {
	Confidence         float64
	Box                BoundingBox
	Position           Position
	Gender             string
	GenderConfidence   float64
	Activity           string
	ActivityConfidence float64
}

// Score is the ranking weight: bounding-box area times confidence.
func (p PersonRecord) Score() float64 {
	return p.Box.Area() * p.Confidence
}
