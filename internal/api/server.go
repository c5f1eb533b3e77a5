package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"pdfpilot/internal/log"
	"pdfpilot/internal/services"
)

const maxMultipartMemory = 8 << 20 // 8 MB

type Server struct {
	router  *mux.Router
	handler http.Handler
	answers *services.AnswerService
	runs    *services.RunService
	jobs    *JobManager
}

func NewServer(answers *services.AnswerService, runs *services.RunService) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		answers: answers,
		runs:    runs,
		jobs:    NewJobManager(),
	}
	s.routes()

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	s.handler = c.Handler(s.router)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() {
	s.router.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/api/ask", s.handleAsk).Methods(http.MethodPost)
	s.router.HandleFunc("/api/ask/jobs", s.handleCreateAskJob).Methods(http.MethodPost)
	s.router.HandleFunc("/api/ask/jobs/{id}", s.handleJobStatus).Methods(http.MethodGet)
	s.router.HandleFunc("/api/history", s.handleHistory).Methods(http.MethodGet)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	pdfBytes, question, ok := readAskForm(w, r)
	if !ok {
		return
	}

	resp, err := s.answers.Ask(r.Context(), pdfBytes, question)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateAskJob(w http.ResponseWriter, r *http.Request) {
	pdfBytes, question, ok := readAskForm(w, r)
	if !ok {
		return
	}

	jobID, snapshot := s.jobs.CreateJob(question)
	go s.runAskJob(context.Background(), jobID, pdfBytes, question)

	writeJSON(w, http.StatusAccepted, snapshot)
}

func (s *Server) runAskJob(ctx context.Context, jobID string, pdfBytes []byte, question string) {
	s.jobs.MarkProcessing(jobID)
	progress := func(step, message string, current, total int) {
		s.jobs.UpdateProgress(jobID, step, message, current, total)
	}

	resp, err := s.answers.AskWithProgress(ctx, pdfBytes, question, progress)
	if err != nil {
		log.Warnf("ask job %s: %v", jobID, err)
		s.jobs.MarkFailed(jobID, err.Error())
		return
	}
	s.jobs.MarkComplete(jobID, *resp)
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]
	job, ok := s.jobs.GetJob(jobID)
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := s.runs.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

// readAskForm pulls the uploaded PDF and the question out of a multipart
// form. On failure it writes the error response and reports false.
func readAskForm(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return nil, "", false
	}
	if form := r.MultipartForm; form != nil {
		defer form.RemoveAll()
	}

	question := strings.TrimSpace(r.FormValue("question"))
	if question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return nil, "", false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return nil, "", false
	}
	defer file.Close()

	pdfBytes, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read uploaded file")
		return nil, "", false
	}
	if len(pdfBytes) == 0 {
		writeError(w, http.StatusBadRequest, "uploaded file is empty")
		return nil, "", false
	}
	return pdfBytes, question, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
