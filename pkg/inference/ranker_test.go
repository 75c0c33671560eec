package inference

import (
	"testing"
)

func personObject(conf, x, width float64) DetectedObject {
	return DetectedObject{
		Label:      "person",
		Confidence: conf,
		Box:        BoundingBox{X: x, Y: 0, Width: width, Height: 100},
	}
}

func TestRankPeople_NilFrame(t *testing.T) {
	if people := RankPeople(nil); len(people) != 0 {
		t.Errorf("expected empty output for nil frame, got %d", len(people))
	}
}

func TestRankPeople_FiltersLabelAndConfidence(t *testing.T) {
	frame := &ResultFrame{
		SourceWidth: 1000,
		Objects: []DetectedObject{
			personObject(0.9, 0, 100),
			{Label: "dog", Confidence: 0.99, Box: BoundingBox{Width: 100, Height: 100}},
			personObject(0.34, 0, 100), // below cutoff
			{Label: "PERSON", Confidence: 0.5, Box: BoundingBox{Width: 50, Height: 100}},
		},
	}

	people := RankPeople(frame)
	if len(people) != 2 {
		t.Fatalf("expected 2 people, got %d", len(people))
	}
}

func TestRankPeople_ExactConfidenceBoundaryKept(t *testing.T) {
	frame := &ResultFrame{
		SourceWidth: 1000,
		Objects:     []DetectedObject{personObject(0.35, 0, 100)},
	}
	if people := RankPeople(frame); len(people) != 1 {
		t.Errorf("confidence exactly 0.35 should be kept, got %d people", len(people))
	}
}

func TestRankPeople_SortsByScoreDescending(t *testing.T) {
	// score = width * height * confidence
	small := personObject(0.9, 0, 50)    // 50*100*0.9 = 4500
	large := personObject(0.5, 200, 200) // 200*100*0.5 = 10000

	frame := &ResultFrame{SourceWidth: 1000, Objects: []DetectedObject{small, large}}
	people := RankPeople(frame)

	if len(people) != 2 {
		t.Fatalf("expected 2 people, got %d", len(people))
	}
	if people[0].Box.Width != 200 {
		t.Errorf("highest-score person should rank first, got width %v", people[0].Box.Width)
	}
}

func TestRankPeople_StableTies(t *testing.T) {
	a := personObject(0.5, 10, 100)
	b := personObject(0.5, 500, 100)

	frame := &ResultFrame{SourceWidth: 1000, Objects: []DetectedObject{a, b}}
	people := RankPeople(frame)

	if people[0].Box.X != 10 {
		t.Error("equal scores should keep encounter order")
	}
}

func TestClassifyPosition_Boundaries(t *testing.T) {
	// Center fraction = (x + width/2) / sourceWidth with width 0 for exact values.
	tests := []struct {
		frac float64
		want Position
	}{
		{0.399, PositionLeft},
		{0.40, PositionCenter}, // boundary is non-inclusive
		{0.41, PositionCenter},
		{0.60, PositionCenter}, // boundary is non-inclusive
		{0.601, PositionRight},
		{0.2, PositionLeft},
		{0.8, PositionRight},
	}

	for _, tt := range tests {
		box := BoundingBox{X: tt.frac * 1000, Width: 0}
		got := classifyPosition(box, 1000)
		if got != tt.want {
			t.Errorf("frac %v: got %v, want %v", tt.frac, got, tt.want)
		}
	}
}

func TestClassifyPosition_MissingSourceWidth(t *testing.T) {
	box := BoundingBox{X: 10, Width: 20}
	if got := classifyPosition(box, 0); got != PositionCenter {
		t.Errorf("missing source width should default to center, got %v", got)
	}
}
