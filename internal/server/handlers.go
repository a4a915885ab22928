package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/edugenie/edugenie/internal/llm"
	"github.com/edugenie/edugenie/internal/session"
	"github.com/edugenie/edugenie/internal/topic"
)

// System instructions for the two explanation modes.
const (
	systemPrompt = "You are EduGenie, an academic AI assistant. Provide " +
		"clear, student-friendly academic explanations with accurate and " +
		"structured reasoning."
	simpleSystemPrompt = "You are EduGenie, an academic AI assistant. " +
		"Explain concepts in very simple language, using analogies and " +
		"real-life examples suitable for a 10-year-old."
)

const completionFailureNotice = "Something went wrong while contacting the AI service."

const noTopicNotice = "Please send at least one message first. " +
	"Smart Tools use your latest question/topic."

// defaultPlanDays matches the original seven-day study plan.
const defaultPlanDays = 7

// --- Request/Response types ---

type chatRequest struct {
	Content string `json:"content"`
}

type settingsRequest struct {
	ExplainLike10 bool `json:"explain_like_10"`
}

type toolRequest struct {
	DurationDays int `json:"duration_days,omitempty"`
}

type messagesResponse struct {
	SessionID string             `json:"session_id"`
	Messages  []*session.Message `json:"messages"`
}

type insightsResponse struct {
	SessionID string               `json:"session_id"`
	Topics    []session.TopicCount `json:"topics"`
}

// --- Handlers ---

func (s *Server) handleGetMessages(w http.ResponseWriter, r *http.Request) {
	sess, err := s.resolveSession(w, r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve session")
		log.Printf("Error resolving session: %v", err)
		return
	}
	s.writeMessages(w, sess.ID)
}

// handleChat appends the user message, asks the model for a reply with the
// full transcript as context, and appends the result. A completion failure
// becomes the assistant's reply; the user message is kept either way.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	sess, err := s.resolveSession(w, r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve session")
		log.Printf("Error resolving session: %v", err)
		return
	}

	// Tally the topic for the insights view before anything else.
	if err := s.store.IncrementTopic(sess.ID, topic.Extract(content)); err != nil {
		log.Printf("Error counting topic: %v", err)
	}

	// The user message is recorded before the completion is attempted, so
	// the transcript keeps it even when the request fails.
	userMsg := &session.Message{
		SessionID: sess.ID,
		Role:      string(llm.RoleUser),
		Content:   content,
	}
	if err := s.store.AppendMessage(userMsg); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store message")
		log.Printf("Error storing user message: %v", err)
		return
	}

	msgs, err := s.store.Messages(sess.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load transcript")
		log.Printf("Error loading transcript: %v", err)
		return
	}

	reply, err := s.provider.Complete(r.Context(), buildPrompt(sess, msgs))
	if err != nil {
		reply = failureReply(err)
		log.Printf("Completion failed for session %s: %v", sess.ID, err)
	}

	assistantMsg := &session.Message{
		SessionID: sess.ID,
		Role:      string(llm.RoleAssistant),
		Content:   reply,
	}
	if err := s.store.AppendMessage(assistantMsg); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store reply")
		log.Printf("Error storing assistant message: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, assistantMsg)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	sess, err := s.resolveSession(w, r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve session")
		log.Printf("Error resolving session: %v", err)
		return
	}

	if err := s.store.ClearMessages(sess.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear chat")
		log.Printf("Error clearing chat: %v", err)
		return
	}
	if err := s.store.AppendMessage(&session.Message{
		SessionID: sess.ID,
		Role:      string(llm.RoleAssistant),
		Content:   greeting,
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reset chat")
		log.Printf("Error re-seeding greeting: %v", err)
		return
	}

	s.writeMessages(w, sess.ID)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := s.resolveSession(w, r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve session")
		log.Printf("Error resolving session: %v", err)
		return
	}

	if err := s.store.SetExplainSimple(sess.ID, req.ExplainLike10); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update settings")
		log.Printf("Error updating settings: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, settingsRequest{ExplainLike10: req.ExplainLike10})
}

// handleTool runs one of the smart tools against the session's latest user
// message. The tools are placeholders and never call the model.
func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	// The tool name is validated up front so an unknown tool is a 400 even
	// on a session that has no messages yet.
	tool := chi.URLParam(r, "tool")
	switch tool {
	case "quiz", "summary", "study_plan":
	default:
		writeError(w, http.StatusBadRequest, "tool must be 'quiz', 'summary' or 'study_plan'")
		return
	}

	var req toolRequest
	// The body is optional; only the study plan reads anything from it. An
	// empty body is fine, a malformed one is not.
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(string(body)) != "" {
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.DurationDays <= 0 {
		req.DurationDays = defaultPlanDays
	}

	sess, err := s.resolveSession(w, r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve session")
		log.Printf("Error resolving session: %v", err)
		return
	}

	msgs, err := s.store.Messages(sess.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load transcript")
		log.Printf("Error loading transcript: %v", err)
		return
	}

	var output string
	if lastTopic := latestUserMessage(msgs); lastTopic == "" {
		output = noTopicNotice
	} else {
		switch tool {
		case "quiz":
			output = s.tools.GenerateQuiz(lastTopic)
		case "summary":
			output = s.tools.SummarizeTopic(lastTopic)
		case "study_plan":
			output = s.tools.StudyPlan(lastTopic, req.DurationDays)
		}
	}

	assistantMsg := &session.Message{
		SessionID: sess.ID,
		Role:      string(llm.RoleAssistant),
		Content:   output,
	}
	if err := s.store.AppendMessage(assistantMsg); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store tool output")
		log.Printf("Error storing tool output: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, assistantMsg)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	sess, err := s.resolveSession(w, r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve session")
		log.Printf("Error resolving session: %v", err)
		return
	}

	topics, err := s.store.TopTopics(sess.ID, 5)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load insights")
		log.Printf("Error loading insights: %v", err)
		return
	}
	if topics == nil {
		topics = []session.TopicCount{}
	}

	writeJSON(w, http.StatusOK, insightsResponse{SessionID: sess.ID, Topics: topics})
}

// --- Helpers ---

func (s *Server) writeMessages(w http.ResponseWriter, sessionID string) {
	msgs, err := s.store.Messages(sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load transcript")
		log.Printf("Error loading transcript: %v", err)
		return
	}
	if msgs == nil {
		msgs = []*session.Message{}
	}
	writeJSON(w, http.StatusOK, messagesResponse{SessionID: sessionID, Messages: msgs})
}

// buildPrompt maps the stored transcript onto the model input: the adaptive
// system instruction first, then every message in append order, ending with
// the newest user message.
func buildPrompt(sess *session.Session, msgs []*session.Message) []llm.Message {
	instruction := systemPrompt
	if sess.ExplainSimple {
		instruction = simpleSystemPrompt
	}

	out := make([]llm.Message, 0, len(msgs)+1)
	out = append(out, llm.Message{Role: llm.RoleSystem, Content: instruction})
	for _, m := range msgs {
		out = append(out, llm.Message{Role: llm.Role(m.Role), Content: m.Content})
	}
	return out
}

// failureReply turns a completion error into the inline notice shown in
// place of the assistant's reply.
func failureReply(err error) string {
	var cerr *llm.CompletionError
	if errors.As(err, &cerr) {
		return fmt.Sprintf("%s Details: %s", completionFailureNotice, cerr.Message)
	}
	return fmt.Sprintf("%s Details: %s", completionFailureNotice, err)
}

// latestUserMessage returns the most recent non-empty user message, or ""
// when the session has none yet.
func latestUserMessage(msgs []*session.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role != string(llm.RoleUser) {
			continue
		}
		if content := strings.TrimSpace(msgs[i].Content); content != "" {
			return content
		}
	}
	return ""
}
