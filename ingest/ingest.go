// Package ingest accepts records for live sorting over the lumberjack
// protocol, the wire format spoken by beats-style shippers.
package ingest

import (
	"fmt"
	"net"
	"time"

	lj "github.com/elastic/go-lumber/lj"
	srv2 "github.com/elastic/go-lumber/server/v2"
)

// Server receives lumberjack v2 batches on a TCP listener. Batches are
// ACKed as soon as they are buffered; the spool owns them from there.
type Server struct {
	listener    net.Listener
	readTimeout time.Duration
	events      chan *lj.Batch
	server      *srv2.Server
}

func NewServer(addr string, readTimeout time.Duration) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return &Server{
		listener:    ln,
		readTimeout: readTimeout,
		events:      make(chan *lj.Batch, 1000),
	}, nil
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Accept starts the lumberjack v2 server.
func (s *Server) Accept() error {
	srv, err := srv2.NewWithListener(
		s.listener,
		srv2.Timeout(s.readTimeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create lumberjack server: %w", err)
	}
	s.server = srv

	// Pull batches off ReceiveChan and ack them.
	go func() {
		for batch := range s.server.ReceiveChan() {
			s.events <- batch
			batch.ACK()
		}
		close(s.events)
	}()

	return nil
}

// ReadLines drains the currently buffered batches and returns the
// record line of each event. It never blocks; an empty slice means no
// batches were pending.
func (s *Server) ReadLines() ([]string, bool) {
	var out []string

	for {
		select {
		case batch, ok := <-s.events:
			if !ok {
				return out, false
			}
			for _, evt := range batch.Events {
				if m, ok := evt.(map[string]interface{}); ok {
					if line, ok := EventLine(m); ok {
						out = append(out, line)
					}
				}
			}
		default:
			// Channel is empty, return what we have.
			return out, true
		}
	}
}

// EventLine extracts the sortable record from one lumberjack event.
// The "message" field carries the record; events without one are
// dropped.
func EventLine(evt map[string]interface{}) (string, bool) {
	msg, ok := evt["message"].(string)
	if !ok {
		return "", false
	}
	return msg, true
}

// Close shuts down the server and listener.
func (s *Server) Close() error {
	if s.server != nil {
		s.server.Close()
	}
	return s.listener.Close()
}
