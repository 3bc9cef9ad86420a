// Package api serves GFF inspection over HTTP: decode to a JSON mirror,
// validate, and report header section extents.
package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/gff/internal/dump"
	"github.com/samcharles93/gff/internal/logger"
	"github.com/samcharles93/gff/internal/resource"
	"github.com/samcharles93/gff/internal/version"
	"github.com/samcharles93/gff/pkg/gff"
)

// DefaultMaxBodyBytes bounds uploaded resources.
const DefaultMaxBodyBytes = 64 << 20

const headerRequestID = "X-Request-Id"

type Config struct {
	Logger       logger.Logger
	MaxBodyBytes int64
}

type Server struct {
	log     logger.Logger
	maxBody int64
}

func NewServer(cfg Config) *Server {
	s := &Server{log: cfg.Logger, maxBody: cfg.MaxBodyBytes}
	if s.log == nil {
		s.log = logger.Discard()
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	return s
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.POST("/v1/decode", s.handleDecode)
	e.POST("/v1/validate", s.handleValidate)
	e.POST("/v1/stats", s.handleStats)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		RequestID: requestID(c),
		Status:    "ok",
		Version:   version.String(),
	})
}

// handleDecode accepts a raw GFF body. The optional "expect" query parameter
// names the content tag the resource must carry.
func (s *Server) handleDecode(c *echo.Context) error {
	id := requestID(c)
	data, err := s.readBody(c)
	if err != nil {
		return writeBadRequest(c, id, err.Error())
	}

	loader := s.loader(id, c.QueryParam("expect"))
	doc, err := loader.LoadBytes(c.Request().Context(), "request", data)
	if err != nil {
		return writeResourceError(c, id, err)
	}
	m := dump.FromDocument(doc)
	return c.JSON(http.StatusOK, DecodeResponse{RequestID: id, Document: &m})
}

// handleValidate always answers 200 for a readable body; the verdict is in
// the response.
func (s *Server) handleValidate(c *echo.Context) error {
	id := requestID(c)
	data, err := s.readBody(c)
	if err != nil {
		return writeBadRequest(c, id, err.Error())
	}

	resp := ValidateResponse{RequestID: id, Valid: true}
	loader := s.loader(id, c.QueryParam("expect"))
	if _, err := loader.LoadBytes(c.Request().Context(), "request", data); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
		var de *gff.DecodeError
		if errors.As(err, &de) {
			resp.Kind = de.Kind.Error()
			off := de.Offset
			resp.Offset = &off
		} else {
			resp.Kind = resourceKind(err)
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleStats(c *echo.Context) error {
	id := requestID(c)
	data, err := s.readBody(c)
	if err != nil {
		return writeBadRequest(c, id, err.Error())
	}

	h, err := gff.ParseHeader(data)
	if err != nil {
		return writeResourceError(c, id, &resource.Error{Name: "request", Kind: resource.ErrUnsupportedResource, Err: err})
	}
	resp := StatsResponse{
		RequestID: id,
		Type:      strings.TrimRight(h.ContentType(), " "),
		Version:   h.VersionTag(),
		Size:      len(data),
	}
	for _, st := range h.Stats() {
		resp.Sections = append(resp.Sections, SectionStat{
			Name:   st.Section.String(),
			Offset: st.Offset,
			Count:  st.Count,
			Bytes:  st.Bytes,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) loader(id, expect string) *resource.Loader {
	return &resource.Loader{Expect: expect, Logger: s.log.With("request_id", id)}
}

func (s *Server) readBody(c *echo.Context) ([]byte, error) {
	body := c.Request().Body
	if body == nil {
		return nil, errors.New("request body is required")
	}
	data, err := io.ReadAll(io.LimitReader(body, s.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > s.maxBody {
		return nil, fmt.Errorf("body exceeds %d bytes", s.maxBody)
	}
	if len(data) == 0 {
		return nil, errors.New("request body is required")
	}
	return data, nil
}

// requestID reuses the caller's X-Request-Id when present and echoes it on
// the response.
func requestID(c *echo.Context) string {
	id := c.Request().Header.Get(headerRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Response().Header().Set(headerRequestID, id)
	return id
}
