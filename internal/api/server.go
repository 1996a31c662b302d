package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"
)

// DefaultMaxUploadBytes bounds the request body of POST /v1/samples.
const DefaultMaxUploadBytes = 1 << 30

type Server struct {
	store     *SampleStore
	service   *DecodeService
	maxUpload int64
}

func NewServer(store *SampleStore, service *DecodeService) *Server {
	return &Server{
		store:     store,
		service:   service,
		maxUpload: DefaultMaxUploadBytes,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/samples", s.handleCreateSample)
	e.GET("/v1/samples", s.handleListSamples)
	e.GET("/v1/samples/:id", s.handleGetSample)
	e.DELETE("/v1/samples/:id", s.handleDeleteSample)
}

func (s *Server) handleCreateSample(c *echo.Context) error {
	if s.service == nil {
		return writeError(c, http.StatusInternalServerError, "server_error", "decode service not configured", "", "")
	}
	params, err := decodeParams(c)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	req := c.Request()
	size := req.ContentLength
	if size > s.maxUpload {
		return writeError(c, http.StatusRequestEntityTooLarge, "invalid_request_error", "sample exceeds upload limit", "", "")
	}
	if size <= 0 {
		size = -1
	}
	body := http.MaxBytesReader(c.Response(), req.Body, s.maxUpload)

	res, err := s.service.Decode(req.Context(), body, size, params)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return writeError(c, http.StatusRequestEntityTooLarge, "invalid_request_error", "sample exceeds upload limit", "", "")
		case errors.Is(err, ErrInvalidSample):
			return writeInvalidSample(c, err.Error())
		default:
			return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "", "")
		}
	}
	if s.store != nil {
		s.store.Put(res)
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) handleListSamples(c *echo.Context) error {
	ids := []string{}
	if s.store != nil {
		ids = append(ids, s.store.IDs()...)
	}
	return c.JSON(http.StatusOK, SampleList{Object: "list", Data: ids})
}

func (s *Server) handleGetSample(c *echo.Context) error {
	id := c.Param("id")
	if id == "" || s.store == nil {
		return writeNotFound(c, "sample not found")
	}
	res, ok := s.store.Get(id)
	if !ok {
		return writeNotFound(c, "sample not found")
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) handleDeleteSample(c *echo.Context) error {
	id := c.Param("id")
	if id == "" || s.store == nil || !s.store.Delete(id) {
		return writeNotFound(c, "sample not found")
	}
	return c.JSON(http.StatusOK, DeleteSampleResp{
		ID:      id,
		Object:  "sample",
		Deleted: true,
	})
}
