package service

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// HTTPService adapts an *http.Server to Service.
type HTTPService struct {
	name     string
	server   *http.Server
	listener net.Listener
}

// NewHTTPService wraps server. The server listens on server.Addr when Run is
// called.
func NewHTTPService(name string, server *http.Server) *HTTPService {
	return &HTTPService{name: name, server: server}
}

// NewHTTPServiceWithListener wraps server and serves on an existing listener.
func NewHTTPServiceWithListener(name string, server *http.Server, l net.Listener) *HTTPService {
	return &HTTPService{name: name, server: server, listener: l}
}

// Name implements Service.
func (s *HTTPService) Name() string {
	return s.name
}

// Run implements Service. It returns nil once the server has been shut down.
func (s *HTTPService) Run(ctx context.Context) error {
	s.server.BaseContext = func(net.Listener) context.Context {
		return context.WithoutCancel(ctx)
	}

	var err error
	if s.listener != nil {
		err = s.server.Serve(s.listener)
	} else {
		err = s.server.ListenAndServe()
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

// Shutdown implements Service.
func (s *HTTPService) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
