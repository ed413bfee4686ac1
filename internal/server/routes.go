package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/drakos74/mlviz/internal/control"
	"github.com/drakos74/mlviz/internal/demo"
	"github.com/drakos74/mlviz/internal/metrics"
)

// Demos returns the routes serving the frames and the inputs of the loop.
func Demos(loop *demo.Loop, debug bool) []Route {
	return []Route{
		{
			Action: Api,
			Path:   "demos",
			Method: GET,
			Exec: func(r *http.Request) ([]byte, int, error) {
				return jsonResponse(loop.Demos())
			},
		},
		{
			Action: Data,
			Path:   "frame",
			Method: GET,
			Exec: func(r *http.Request) ([]byte, int, error) {
				name := r.URL.Query().Get("demo")
				if name == "" {
					return nil, http.StatusBadRequest, fmt.Errorf("missing demo parameter")
				}
				f, err := loop.Frame(name)
				if err != nil {
					return nil, http.StatusNotFound, err
				}
				return jsonResponse(f)
			},
		},
		{
			Action: Api,
			Path:   "control",
			Method: POST,
			Exec: func(r *http.Request) ([]byte, int, error) {
				var in demo.Input
				if err := JsonRead(r, debug, &in); err != nil {
					return nil, http.StatusBadRequest, fmt.Errorf("could not decode input: %w", err)
				}
				if err := loop.Submit(in); err != nil {
					return nil, status(err), err
				}
				return []byte{}, http.StatusAccepted, nil
			},
		},
	}
}

func status(err error) int {
	if errors.Is(err, demo.ErrUnknownDemo) {
		return http.StatusNotFound
	}
	if errors.Is(err, control.ErrUnknownControl) || errors.Is(err, control.ErrUnknownAction) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func jsonResponse(v interface{}) ([]byte, int, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("could not encode response: %w", err)
	}
	return b, http.StatusOK, nil
}

// Metrics is the prometheus endpoint of the demo counters.
func Metrics() http.Handler {
	return metrics.Handler()
}

// New creates the demo server, with the liveness route and the metrics endpoint.
// In debug mode every request and payload is logged.
func New(name string, port int, loop *demo.Loop, debug bool) *Server {
	s := NewServer(name, port)
	if debug {
		s.Debug()
	}
	return s.
		Add(Live()).
		Add(Demos(loop, debug)...).
		Mount("/metrics", Metrics())
}
