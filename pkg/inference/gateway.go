package inference

import (
	"context"
	"log/slog"

	"github.com/sightline/go-sightline/pkg/extract"
)

// Result is the outcome of one inference request.
type Result struct {
	SourceWidth  int
	SourceHeight int
	People       []PersonRecord

	// Debug carries extraction diagnostics when requested on a detailed pass.
	Debug *extract.Debug
}

// Gateway composes session management, frame selection, person ranking, and
// attribute extraction into the two request modes exposed to clients.
type Gateway struct {
	manager   *Manager
	profileID string
	logger    *slog.Logger
}

// NewGateway creates a gateway over the given session manager.
func NewGateway(manager *Manager, profileID string) *Gateway {
	return &Gateway{
		manager:   manager,
		profileID: profileID,
		logger:    slog.Default().With("component", "inference.gateway"),
	}
}

// NewGatewayWithLogger creates a gateway with a custom logger.
func NewGatewayWithLogger(manager *Manager, profileID string, logger *slog.Logger) *Gateway {
	gw := NewGateway(manager, profileID)
	gw.logger = logger.With("component", "inference.gateway")
	return gw
}

// Warmup eagerly establishes the detection session so authentication and
// configuration errors surface at startup instead of on the first request.
// The detailed session stays lazy; it is only dialed on first use.
func (g *Gateway) Warmup(ctx context.Context) error {
	_, err := g.manager.Connect(ctx, DetectProfile(g.profileID))
	return err
}

// Detect runs the fast detection pass: submit the image, keep the most
// complete frame, rank the people in it.
func (g *Gateway) Detect(ctx context.Context, image []byte) (*Result, error) {
	session, err := g.manager.Connect(ctx, DetectProfile(g.profileID))
	if err != nil {
		return nil, err
	}
	frame, err := g.runInfer(ctx, session, image)
	if err != nil {
		return nil, err
	}
	return resultFromFrame(frame), nil
}

// Detailed runs the detection pass and then the visual-interpretation pass,
// attaching resolved attributes to the top-ranked person only: the detailed
// profile characterizes the nearest, most salient subject.
func (g *Gateway) Detailed(ctx context.Context, image []byte, withDebug bool) (*Result, error) {
	result, err := g.Detect(ctx, image)
	if err != nil {
		return nil, err
	}

	session, err := g.manager.Connect(ctx, DetailProfile(g.profileID))
	if err != nil {
		return nil, err
	}
	frame, err := g.runInfer(ctx, session, image)
	if err != nil {
		return nil, err
	}

	var payload any
	if frame != nil && frame.Analysis != nil {
		payload = frame.Analysis
	}

	var attrs extract.Attributes
	if withDebug {
		attrs, result.Debug = extract.ExtractWithDebug(payload)
	} else {
		attrs = extract.Extract(payload)
	}

	if len(result.People) > 0 {
		result.People[0].Gender = attrs.Gender
		result.People[0].GenderConfidence = attrs.GenderConfidence
		result.People[0].Activity = attrs.Activity
		result.People[0].ActivityConfidence = attrs.ActivityConfidence
	}

	g.logger.Debug("detailed pass complete",
		"people", len(result.People),
		"gender", attrs.Gender,
		"activity", attrs.Activity,
	)
	return result, nil
}

// runInfer submits one image on the session's exclusive queue and reduces the
// response stream to its best frame.
func (g *Gateway) runInfer(ctx context.Context, session *Session, image []byte) (*ResultFrame, error) {
	var best *ResultFrame
	err := session.RunExclusive(func(conn Conn) error {
		stream, err := conn.Infer(ctx, image)
		if err != nil {
			return err
		}
		defer stream.Close()

		best, err = BestFrame(stream)
		return err
	})
	if err != nil {
		return nil, err
	}
	return best, nil
}

// resultFromFrame ranks the frame's people. A nil frame (empty stream) maps
// to an empty result, not an error.
func resultFromFrame(frame *ResultFrame) *Result {
	result := &Result{People: RankPeople(frame)}
	if frame != nil {
		result.SourceWidth = frame.SourceWidth
		result.SourceHeight = frame.SourceHeight
	}
	return result
}
