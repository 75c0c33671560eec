package server

import (
	"github.com/sightline/go-sightline/pkg/extract"
	"github.com/sightline/go-sightline/pkg/inference"
)

// PersonDTO is one detected person on the wire. Gender and activity are null
// unless the detailed pass resolved them.
type PersonDTO struct {
	Confidence         float64 `json:"confidence"`
	X                  float64 `json:"x"`
	Y                  float64 `json:"y"`
	Width              float64 `json:"width"`
	Height             float64 `json:"height"`
	Position           string  `json:"position"`
	Gender             *string `json:"gender"`
	GenderConfidence   float64 `json:"genderConfidence"`
	Activity           *string `json:"activity"`
	ActivityConfidence float64 `json:"activityConfidence"`
}

// InferResponse is the body of a successful POST /api/infer.
type InferResponse struct {
	SourceWidth  int            `json:"source_width"`
	SourceHeight int            `json:"source_height"`
	People       []PersonDTO    `json:"people"`
	ViDebug      *extract.Debug `json:"vi_debug,omitempty"`
}

// ErrorResponse is the body of any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func responseFrom(result *inference.Result) InferResponse {
	resp := InferResponse{
		SourceWidth:  result.SourceWidth,
		SourceHeight: result.SourceHeight,
		People:       make([]PersonDTO, 0, len(result.People)),
		ViDebug:      result.Debug,
	}
	for _, p := range result.People {
		resp.People = append(resp.People, PersonDTO{
			Confidence:         p.Confidence,
			X:                  p.Box.X,
			Y:                  p.Box.Y,
			Width:              p.Box.Width,
			Height:             p.Box.Height,
			Position:           string(p.Position),
			Gender:             nullable(p.Gender),
			GenderConfidence:   p.GenderConfidence,
			Activity:           nullable(p.Activity),
			ActivityConfidence: p.ActivityConfidence,
		})
	}
	return resp
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
