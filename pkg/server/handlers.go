package server

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sightline/go-sightline/pkg/hub"
	"github.com/sightline/go-sightline/pkg/inference"
)

// Request modes accepted on /api/infer.
const (
	modeDetect = "detect"
	modeDetail = "vi"
)

// handleInfer accepts a multipart image upload and runs the requested
// inference mode.
func (s *Server) handleInfer(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "no image uploaded"})
	}

	mode := c.Query("mode", modeDetect)
	if mode != modeDetect && mode != modeDetail {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "mode must be detect or vi"})
	}
	withDebug := c.Query("debug") == "1"

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
	}

	s.statusHub.Publish(hub.RequestEvent(mode))
	start := time.Now()

	var result *inference.Result
	if mode == modeDetail {
		result, err = s.engine.Detailed(c.UserContext(), image, withDebug)
	} else {
		result, err = s.engine.Detect(c.UserContext(), image)
	}
	if err != nil {
		s.logger.Error("inference failed", "mode", mode, "error", err)
		s.statusHub.Publish(hub.ErrorEvent(mode, err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
	}

	elapsed := time.Since(start)
	s.statusHub.Publish(hub.ResultEvent(mode, len(result.People), elapsed))
	s.logger.Info("inference complete",
		"mode", mode,
		"people", len(result.People),
		"elapsed_ms", elapsed.Milliseconds(),
	)
	return c.JSON(responseFrom(result))
}

// handleHealth reports liveness for probes.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "ok",
		"subscribers": s.statusHub.ClientCount(),
	})
}
