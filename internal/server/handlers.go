package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/everstacklabs/costpilot/internal/architect"
)

const apiVersion = "0.3.0"

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"name":        "costpilot API",
		"version":     apiVersion,
		"description": "Cost-optimal model recommendations for LLM workloads",
		"endpoints": map[string]string{
			"optimize":  "/api/architect/optimize",
			"models":    "/api/models",
			"providers": "/api/providers",
			"stats":     "/api/stats",
		},
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return writeError(c, http.StatusServiceUnavailable, "catalog unavailable")
	}

	catalogStatus := "operational"
	if snap.Len() == 0 {
		catalogStatus = "empty"
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "healthy",
		"version": apiVersion,
		"catalog": catalogStatus,
	})
}

func (s *Server) handleOptimize(c echo.Context) error {
	var req architect.Request
	if err := decodeRequestBody(c, &req); err != nil {
		return err
	}

	result, err := s.architect.Optimize(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleModels(c echo.Context) error {
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return toHTTPError(fmt.Errorf("%w: %v", architect.ErrCatalogUnavailable, err))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status": "success",
		"models": snap.Offerings(),
		"total":  snap.Len(),
	})
}

func (s *Server) handleProviders(c echo.Context) error {
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return toHTTPError(fmt.Errorf("%w: %v", architect.ErrCatalogUnavailable, err))
	}

	providers := snap.Providers()
	if providers == nil {
		providers = []string{}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "success",
		"providers": providers,
		"total":     len(providers),
	})
}

func (s *Server) handleStats(c echo.Context) error {
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return toHTTPError(fmt.Errorf("%w: %v", architect.ErrCatalogUnavailable, err))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":          "success",
		"total_models":    snap.Stats().TotalModels,
		"providers":       snap.Stats().Providers,
		"total_providers": len(snap.Stats().Providers),
	})
}

func decodeRequestBody[T any](c echo.Context, target *T) error {
	req := c.Request()
	defer req.Body.Close()

	req.Body = http.MaxBytesReader(c.Response(), req.Body, maxBodyBytes)

	decoder := json.NewDecoder(req.Body)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return requestError{
				Status:  http.StatusBadRequest,
				Message: "request body is required",
			}
		}
		return requestError{
			Status:  http.StatusBadRequest,
			Message: fmt.Sprintf("invalid JSON payload: %v", err),
		}
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return requestError{
			Status:  http.StatusBadRequest,
			Message: "request body must contain a single JSON object",
		}
	}
	return nil
}
