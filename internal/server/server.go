// Package server exposes the demo frames and accepts the user inputs over http.
package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"reflect"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
)

// Action is the top level path of a route.
type Action string

// Method is the http method of a route.
type Method string

const (
	Data Action = "data"
	Api  Action = "api"

	GET  Method = "GET"
	POST Method = "POST"
)

// Handler processes a request and returns the response payload and status code.
type Handler func(r *http.Request) ([]byte, int, error)

// Route maps a path to its handler.
type Route struct {
	Action Action
	Path   string
	Method Method
	Exec   Handler
}

// Server serves the registered routes.
type Server struct {
	name   string
	port   int
	debug  bool
	block  block
	routes []Route
	extra  map[string]http.Handler
}

// NewServer creates a server with no routes.
func NewServer(name string, port int) *Server {
	return &Server{
		name:   name,
		port:   port,
		block:  newBlock(),
		routes: make([]Route, 0),
		extra:  make(map[string]http.Handler),
	}
}

// Debug sets the server to debug mode, every request is logged with its duration.
func (s *Server) Debug() *Server {
	if s.debug {
		return s
	}
	s.debug = true
	go s.block.watch(func(action, reaction request) {
		log.Debug().
			Time("time", action.Time).
			Float64("duration", time.Since(action.Time).Seconds()).
			Str("reaction", reaction.Name).
			Msg("completed execution")
	})
	return s
}

// AddRoute adds the given route to the server
func (s *Server) AddRoute(method Method, action Action, path string, exec Handler) *Server {
	s.routes = append(s.routes, Route{
		Action: action,
		Path:   path,
		Method: method,
		Exec:   exec,
	})
	return s
}

// Add adds the given routes to the server
func (s *Server) Add(route ...Route) *Server {
	s.routes = append(s.routes, route...)
	return s
}

// Mount serves a plain http handler at the given path, e.g. the metrics endpoint.
func (s *Server) Mount(path string, h http.Handler) *Server {
	s.extra[path] = h
	return s
}

func (s *Server) handle(method Method, handler Handler) func(w http.ResponseWriter, r *http.Request) {
	name := runtime.FuncForPC(reflect.ValueOf(handler).Pointer()).Name()
	return func(w http.ResponseWriter, r *http.Request) {
		if s.debug {
			request := fmt.Sprintf("%s request : %s", method, name)
			s.block.action <- newRequest(request)
			defer func() {
				s.block.reaction <- newRequest(request)
			}()
		}
		requestMethod := Method(r.Method)
		switch requestMethod {
		case method:
			b, code, err := handler(r)
			if err != nil {
				s.error(w, err, code)
			} else if code != http.StatusOK {
				s.code(w, b, code)
			} else {
				s.respond(w, b)
			}
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

// Handler returns the mux serving all the routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, route := range s.routes {
		if route.Path != "" {
			mux.HandleFunc(fmt.Sprintf("/%s/%s", route.Action, route.Path), s.handle(route.Method, route.Exec))
		} else {
			mux.HandleFunc(fmt.Sprintf("/%s", route.Action), s.handle(route.Method, route.Exec))
		}
	}
	for path, h := range s.extra {
		mux.Handle(path, h)
	}
	return mux
}

// Run starts the server
func (s *Server) Run() error {
	log.Info().Str("server", s.name).Int("port", s.port).Msg("starting server")
	if err := http.ListenAndServe(fmt.Sprintf(":%d", s.port), s.Handler()); err != nil {
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) code(w http.ResponseWriter, b []byte, code int) {
	w.WriteHeader(code)
	s.respond(w, b)
}

func (s *Server) respond(w http.ResponseWriter, b []byte) {
	_, err := w.Write(b)
	if err != nil {
		log.Error().Err(err).Msg("could not write response")
	}
}

func (s *Server) error(w http.ResponseWriter, err error, code int) {
	if code < http.StatusBadRequest {
		code = http.StatusInternalServerError
	}
	log.Error().Err(err).Int("code", code).Msg("error for http request")
	s.code(w, []byte(err.Error()), code)
}

// Live is the liveness route.
func Live() Route {
	return Route{
		Action: Data,
		Method: GET,
		Exec: func(r *http.Request) (payload []byte, code int, err error) {
			return []byte{}, http.StatusOK, nil
		},
	}
}

// JsonRead decodes the request body into v, an empty body leaves v untouched.
func JsonRead(r *http.Request, debug bool, v interface{}) error {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if debug {
		log.Info().
			Str("url", fmt.Sprintf("%+v", r.URL)).
			Str("request", r.RequestURI).
			Str("remote-address", r.RemoteAddr).
			Str("method", r.Method).
			Str("body", string(body)).
			Msg("received payload")
	}
	if len(body) > 0 {
		err = json.Unmarshal(body, v)
		if err != nil {
			return err
		}
	}
	return nil
}
