package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"

	"github.com/jonathan/job-matcher/internal/ingestion"
	"github.com/jonathan/job-matcher/internal/types"
)

// maxJSONBodyBytes bounds JSON request bodies. Two texts at the maximum
// length still fit after UTF-8 and JSON escaping.
const maxJSONBodyBytes = 2 << 20

// multipartOverhead is allowed on top of the upload limit for part headers.
const multipartOverhead = 64 << 10

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%s is running", s.cfg.AppName),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"version":  s.cfg.Version,
		"synonyms": s.service.Matcher().Synonyms().Version(),
	})
}

// handleMatch compares a job posting with a resume.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	result, ok := s.compare(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, types.JobMatchResponse{
		JobMatchResult: *result,
		Status:         types.StatusSuccess,
	})
}

// handleLegacyCompare serves the same comparison in the response shape of
// the original /cvjob-compare endpoint.
func (s *Server) handleLegacyCompare(w http.ResponseWriter, r *http.Request) {
	result, ok := s.compare(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, types.LegacyMatchResponse{
		JobMatchResult: *result,
		Status:         types.LegacyStatusSuccess,
	})
}

func (s *Server) compare(w http.ResponseWriter, r *http.Request) (*types.JobMatchResult, bool) {
	var req types.JobMatchRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, validationError(err))
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout())
	defer cancel()

	result, err := s.service.CompareRequest(ctx, &req)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return result, true
}

// handleMatchSkills compares two explicit skill lists.
func (s *Server) handleMatchSkills(w http.ResponseWriter, r *http.Request) {
	var req types.SkillMatchRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	result, explanation := s.service.CompareSkills(req.JobSkills, req.ResumeSkills, req.Explain)
	s.jsonResponse(w, http.StatusOK, types.SkillMatchResponse{
		Result:      *result,
		Explanation: explanation,
		Status:      types.StatusSuccess,
	})
}

// handleUploadPDF extracts the text of an uploaded PDF resume.
func (s *Server) handleUploadPDF(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.cfg.MaxUploadBytes()
	tooLarge := &ErrValidation{
		Field:   "file",
		Message: fmt.Sprintf("File size must be less than %dMB", s.cfg.MaxUploadMB),
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeError(w, r, tooLarge)
			return
		}
		s.writeError(w, r, &ErrValidation{Field: "file", Message: "a PDF file is required"})
		return
	}
	defer file.Close()

	mediaType, _, _ := mime.ParseMediaType(header.Header.Get("Content-Type"))
	if mediaType != ingestion.MIMEPDF {
		s.writeError(w, r, &ErrValidation{Field: "file", Message: "File must be a PDF"})
		return
	}
	if header.Size > maxBytes {
		s.writeError(w, r, tooLarge)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("failed to read upload: %w", err))
		return
	}
	if int64(len(data)) > maxBytes {
		s.writeError(w, r, tooLarge)
		return
	}

	log.Printf("[upload] Received %s (%d bytes)", header.Filename, len(data))
	doc, err := ingestion.ExtractText(ingestion.MIMEPDF, data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.PDFUploadResponse{
		Text:      doc.Text,
		PageCount: doc.PageCount,
		CharCount: doc.CharCount,
		Status:    types.StatusSuccess,
	})
}

// decodeJSON reads a bounded JSON body into v.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &ErrValidation{Field: "body", Message: "request body too large"}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	return nil
}
