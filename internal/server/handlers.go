package server

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/job-gap-analyzer/internal/jobrecord"
	"github.com/jonathan/job-gap-analyzer/internal/jobsapi"
	"github.com/jonathan/job-gap-analyzer/internal/resume"
)

// maxUploadBytes caps both multipart resume uploads and JSON request bodies.
const maxUploadBytes = 10 << 20 // 10 MiB

// searchRequest is the body of POST /search.
type searchRequest struct {
	Keywords  string `json:"keywords" validate:"required,min=1"`
	Pages     int    `json:"pages" validate:"gte=0,lte=10"`
	PerPage   int    `json:"per_page" validate:"gte=0,lte=100"`
	MinSalary int    `json:"min_salary" validate:"gte=0"`
	Position  string `json:"position"`
}

// searchResponse is the body returned by POST /search.
type searchResponse struct {
	Count  int                 `json:"count"`
	Stored int                 `json:"stored"`
	Jobs   []jobrecord.Summary `json:"jobs"`
}

// handleSearch queries the job board, stores the results locally, and
// returns the flattened summaries.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	pages := req.Pages
	if pages < 1 {
		pages = 1
	}

	items, err := s.jobs.SearchPages(r.Context(), jobsapi.SearchParams{
		Keywords:  req.Keywords,
		PerPage:   req.PerPage,
		MinSalary: req.MinSalary,
		Position:  req.Position,
	}, pages)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "job search failed: "+err.Error())
		return
	}

	summaries := jobsapi.Summarize(items)
	stored, err := s.store.Upsert(r.Context(), summaries)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to store jobs: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, searchResponse{
		Count:  len(summaries),
		Stored: stored,
		Jobs:   summaries,
	})
}

// handleStoredJobs serves GET /stored-jobs?q=keyword[&limit=n].
func (s *Server) handleStoredJobs(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		s.errorResponse(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.errorResponse(w, http.StatusBadRequest, "query parameter 'limit' must be a positive integer")
			return
		}
		limit = n
	}

	jobs, err := s.store.Search(r.Context(), q, limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "store search failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"count": len(jobs),
		"jobs":  jobs,
	})
}

// analyzeRequest is the JSON body of POST /analyze. The multipart form
// variant carries the same job field plus a resume file upload.
type analyzeRequest struct {
	ResumeText string           `json:"resume_text" validate:"required,min=1"`
	Job        jobrecord.Record `json:"job" validate:"required"`
}

// handleAnalyze runs the gap analysis. Accepts either a JSON body with
// resume_text and the raw job record, or a multipart form with a "resume"
// file upload and a "job" JSON field.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	var req analyzeRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		parsed, err := s.parseAnalyzeForm(r)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		req = parsed
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
			return
		}
	}

	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	summary := jobrecord.Summarize(jobrecord.Item{Job: req.Job}, 0)
	result := s.analyzer.Analyze(r.Context(), summary, req.ResumeText)

	s.jsonResponse(w, http.StatusOK, result)
}

// parseAnalyzeForm extracts the resume text and job record from a multipart
// upload.
func (s *Server) parseAnalyzeForm(r *http.Request) (analyzeRequest, error) {
	var req analyzeRequest

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return req, errBadForm("failed to parse multipart form", err)
	}

	if jobJSON := r.FormValue("job"); jobJSON != "" {
		if err := json.Unmarshal([]byte(jobJSON), &req.Job); err != nil {
			return req, errBadForm("invalid job JSON", err)
		}
	}

	// The resume arrives either as an uploaded file or as a plain text
	// form field.
	file, header, err := r.FormFile("resume")
	switch {
	case err == nil:
		defer file.Close()
		data, readErr := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if readErr != nil {
			return req, errBadForm("failed to read resume upload", readErr)
		}
		text, exErr := resume.Extract(data, filepath.Ext(header.Filename))
		if exErr != nil {
			return req, errBadForm("failed to extract resume text", exErr)
		}
		req.ResumeText = text
	case r.FormValue("resume_text") != "":
		req.ResumeText = r.FormValue("resume_text")
	default:
		return req, errBadForm("either a 'resume' file or a 'resume_text' field is required", nil)
	}

	return req, nil
}

type formError struct {
	msg   string
	cause error
}

func (e *formError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *formError) Unwrap() error { return e.cause }

func errBadForm(msg string, cause error) error {
	return &formError{msg: msg, cause: cause}
}
