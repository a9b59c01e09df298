package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-match/internal/ingestion"
	"github.com/jonathan/resume-match/internal/matching"
	"github.com/jonathan/resume-match/internal/types"
)

// maxBodyBytes caps request bodies before JSON decoding
const maxBodyBytes = 2 << 20

// handleIndex reports that the API is up
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Resume API is running"})
}

// handleHealth returns server health status. Any failing checker marks the
// server degraded with a 503.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	response := map[string]string{"status": "ok"}
	status := http.StatusOK
	for _, checker := range s.checkers {
		if err := checker.Check(ctx); err != nil {
			log.Printf("[health] %s check failed: %v", checker.Name(), err)
			response["status"] = "degraded"
			response[checker.Name()] = err.Error()
			status = http.StatusServiceUnavailable
		}
	}
	s.jsonResponse(w, status, response)
}

// handleResume returns the static résumé
func (s *Server) handleResume(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.resume)
}

// handleParseJob extracts known skills from a job description. HTML is
// reduced to its main text first when no plain text is given.
func (s *Server) handleParseJob(w http.ResponseWriter, r *http.Request) {
	var req types.ParseJobRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.errorFromErr(w, err)
		return
	}

	text := req.Text
	if text == "" && req.HTML != "" {
		extracted, err := ingestion.ExtractHTMLText(req.HTML)
		if err != nil {
			s.errorFromErr(w, &ErrInvalidBody{Cause: err})
			return
		}
		text = extracted
	}

	s.jsonResponse(w, http.StatusOK, types.ParseJobResponse{Skills: s.vocabulary.Extract(text)})
}

// handleMatch scores a résumé against the job's skills
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.errorFromErr(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, matching.MatchResume(&req.Resume, req.JDSkills))
}

// validatable is implemented by request types with validator tags.
type validatable interface {
	Validate() error
}

// decodeRequest reads a JSON object into dst and validates it. Content-Type
// is not checked. An empty or null body leaves dst at its zero value.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst validatable) error {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return &ErrInvalidBody{Cause: err}
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && !bytes.Equal(data, []byte("null")) {
		if err := json.Unmarshal(data, dst); err != nil {
			return &ErrInvalidBody{Cause: err}
		}
	}

	if err := dst.Validate(); err != nil {
		return toValidationError(err)
	}
	return nil
}

// toValidationError reports the first failing field.
func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ErrValidation{Field: fieldErrs[0].Field(), Message: fieldErrs[0].Tag()}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFromErr writes err with the status HTTPStatus assigns it.
func (s *Server) errorFromErr(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}
