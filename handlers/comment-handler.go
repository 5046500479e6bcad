package handlers

import (
	"encoding/json"
	"net/http"

	"kanban-project/board-service/services"

	"github.com/gorilla/mux"
)

type CommentHandler struct {
	service *services.BoardService
}

func NewCommentHandler(service *services.BoardService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	var request struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	comment, err := h.service.AddComment(callerID(r), taskID, request.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]

	comments, err := h.service.GetCommentsForTask(callerID(r), taskID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["commentID"]

	if err := h.service.DeleteComment(callerID(r), commentID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
