// Package serve exposes the match engine as a long-lived NDJSON service
// over a reader/writer pair, typically stdin/stdout.
package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/NickCirv/perf-x-ray/pkg/matcher"
)

// Version is the server protocol version.
const Version = "1.0.0"

// Server answers scan requests against a fixed compiled rule set.
type Server struct {
	engine  *matcher.Engine
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewServer creates a streaming server around an engine.
func NewServer(engine *matcher.Engine, in io.Reader, out io.Writer) *Server {
	return &Server{
		engine:  engine,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
	}
}

// Run starts the server main loop. Cancellation is coarse: the current
// request finishes, then the loop exits.
func (s *Server) Run(ctx context.Context) error {
	s.sendReady()

	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending request before handling EOF.
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(req) {
						return nil
					}
				default:
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(req) {
				return nil
			}
		}
	}
}

// processRequest handles one request; a true return means shut down.
func (s *Server) processRequest(req Request) bool {
	switch req.Type {
	case "scan":
		s.handleScan(req.Payload)
	case "scan_batch":
		s.handleScanBatch(req.Payload)
	case "close":
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) handleScan(payload json.RawMessage) {
	var p ScanPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("scan", err.Error())
		return
	}

	result := ScanResult{
		Source:   p.Source,
		Findings: s.engine.Scan(p.Source, []byte(p.Content)),
	}
	data, _ := json.Marshal(result)
	s.encoder.Encode(Response{
		Success: true,
		Type:    "scan",
		Data:    data,
	})
}

func (s *Server) handleScanBatch(payload json.RawMessage) {
	var p ScanBatchPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("scan_batch", err.Error())
		return
	}

	result := BatchScanResult{Results: make([]ScanResult, 0, len(p.Items))}
	for _, item := range p.Items {
		findings := s.engine.Scan(item.Source, []byte(item.Content))
		result.Results = append(result.Results, ScanResult{
			Source:   item.Source,
			Findings: findings,
		})
		result.Total += len(findings)
	}

	data, _ := json.Marshal(result)
	s.encoder.Encode(Response{
		Success: true,
		Type:    "scan_batch",
		Data:    data,
	})
}

func (s *Server) sendReady() {
	data, _ := json.Marshal(ReadyData{Version: Version})
	s.encoder.Encode(Response{
		Success: true,
		Type:    "ready",
		Data:    data,
	})
}

func (s *Server) sendError(reqType, msg string) {
	s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	})
}
