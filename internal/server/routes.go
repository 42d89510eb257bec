package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/revisehq/revise/internal/models"
)

func (s *Server) handleCreateSubject(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, `{"error":"name required"}`, http.StatusBadRequest)
		return
	}

	subject, err := s.tracker.CreateSubject(req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subject)
}

func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.tracker.ListSubjects()
	if err != nil {
		writeError(w, err)
		return
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}
	writeJSON(w, http.StatusOK, subjects)
}

func (s *Server) handleGetSubject(w http.ResponseWriter, r *http.Request) {
	subject, err := s.tracker.GetSubject(chi.URLParam(r, "subjectID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subject)
}

func (s *Server) handleUpdateSubject(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, `{"error":"name required"}`, http.StatusBadRequest)
		return
	}

	subject, err := s.tracker.UpdateSubject(chi.URLParam(r, "subjectID"), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subject)
}

func (s *Server) handleDeleteSubject(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.DeleteSubject(chi.URLParam(r, "subjectID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Subject deleted successfully"})
}

func (s *Server) handleTopicsBySubject(w http.ResponseWriter, r *http.Request) {
	topics, err := s.tracker.TopicsBySubject(chi.URLParam(r, "subjectID"))
	if err != nil {
		writeError(w, err)
		return
	}
	if topics == nil {
		topics = []models.Topic{}
	}
	writeJSON(w, http.StatusOK, topics)
}

func (s *Server) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.SubjectID == "" {
		http.Error(w, `{"error":"subject_id required"}`, http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, `{"error":"name required"}`, http.StatusBadRequest)
		return
	}

	topic, err := s.tracker.CreateTopic(req.SubjectID, req.Name, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.tracker.ListTopics()
	if err != nil {
		writeError(w, err)
		return
	}
	if topics == nil {
		topics = []models.Topic{}
	}
	writeJSON(w, http.StatusOK, topics)
}

func (s *Server) handleGetTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := s.tracker.GetTopic(chi.URLParam(r, "topicID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

func (s *Server) handleUpdateTopic(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}

	topic, err := s.tracker.UpdateTopic(chi.URLParam(r, "topicID"), req.Name, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

func (s *Server) handleDeleteTopic(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.DeleteTopic(chi.URLParam(r, "topicID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Topic deleted successfully"})
}

func (s *Server) handleCompleteRevision(w http.ResponseWriter, r *http.Request) {
	var req models.CompleteRevisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.TopicID == "" {
		http.Error(w, `{"error":"topic_id required"}`, http.StatusBadRequest)
		return
	}

	if err := s.tracker.CompleteRevision(req.TopicID, req.DayNumber); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Revision marked as completed"})
}

func (s *Server) handleDueToday(w http.ResponseWriter, r *http.Request) {
	due, err := s.tracker.DueToday(time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, due)
}

func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	upcoming, err := s.tracker.Upcoming(time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, upcoming)
}
