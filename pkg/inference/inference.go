// Package inference orchestrates requests against the hosted visual-inference
// service.
//
// The service itself is an external collaborator: one image goes in, a finite
// stream of result frames comes out. Everything interesting happens around
// that boundary: lazily established per-profile sessions with strictly
// serialized access, selection of a canonical frame from the stream, and
// ranking of detected people into ordered records.
//
// Example usage:
//
//	engine, _ := inference.NewRemote(
//	    inference.WithAPIKey(os.Getenv("SIGHTLINE_API_KEY")),
//	    inference.WithProfileID("prof-123"),
//	)
//	manager := inference.NewManager(engine)
//	defer manager.CloseAll()
//
//	gw := inference.NewGateway(manager, "prof-123")
//	result, _ := gw.Detect(ctx, jpegFrame)
package inference

import (
	"context"
)

// Engine is the boundary to the hosted visual-inference service.
// Implementations dial one stateful connection per profile.
type Engine interface {
	// Open establishes a connection for the given profile. For profiles that
	// carry a capability configuration (the detailed profile's extraction
	// prompt), Open pushes it before returning.
	Open(ctx context.Context, profile Profile) (Conn, error)
}

// Conn is a stateful connection to one inference profile.
//
// Conn is not safe for concurrent use; callers must serialize access.
// Session.RunExclusive provides that discipline.
type Conn interface {
	// Infer submits a JPEG image and returns the stream of result frames.
	Infer(ctx context.Context, image []byte) (FrameStream, error)

	// Close releases the connection.
	Close() error
}

// FrameStream is a finite stream of result frames for a single request.
// The service may emit intermediate, improving results before converging.
type FrameStream interface {
	// Recv returns the next frame, or io.EOF when the stream is complete.
	Recv() (*ResultFrame, error)

	// Close stops the stream and releases resources.
	Close() error
}
