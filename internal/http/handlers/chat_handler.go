// Support-chat HTTP handlers.
//
// This file exposes REST endpoints for support threads and their messages:
//   - POST   /chat_support                                    (create, author auto-joined)
//   - GET    /chat_support                                     (list, visibility-scoped)
//   - GET    /chat_support/{id}                                (retrieve)
//   - PUT    /chat_support/{id}                                (staff update)
//   - DELETE /chat_support/{id}                                (staff delete)
//   - POST   /chat_support/{id}/create_message                 (post a message)
//   - PUT    /chat_support/{id}/update_message/{message_id}    (author-only edit)
//   - DELETE /chat_support/{id}/delete_message/{message_id}    (author-only delete)
//   - PUT    /chat_support/{id}/connect_support_to_chat        (staff join, strict)
//   - PUT    /chat_support/{id}/disconnect_user_from_chat      (staff leave, strict)
//
// Membership transitions are deliberately non-idempotent: connecting an
// existing member or disconnecting a non-member is a 400, not a no-op.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkosteva/go-airport-backend/internal/services"
)

//
// DTOs
//

// CreateChatRequest is the JSON payload for opening a support thread.
type CreateChatRequest struct {
	// Topic optionally names the thread; a default is used when empty.
	Topic string `json:"topic" example:"Refund for order 42"`
	// IsSupport flags the thread for the staff support queue.
	IsSupport bool `json:"is_support"`
}

// UpdateChatRequest is the JSON payload for updating a support thread.
type UpdateChatRequest struct {
	Topic string `json:"topic" binding:"required,min=1,max=255"`
	// Enabled hides the thread from the API entirely when false.
	Enabled   bool `json:"enabled"`
	IsSupport bool `json:"is_support"`
}

// ChatMessageRequest is the JSON payload for posting or editing a message.
type ChatMessageRequest struct {
	Text string `json:"text" binding:"required" example:"My flight was cancelled, what now?"`
}

//
// Threads
//

// CreateChat godoc
// @ID          createChat
// @Summary     Open a support thread
// @Description Creates a thread authored by the caller, who is automatically
// @Description added to the member set.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string                      true "User ID"
// @Param       body      body   handlers.CreateChatRequest true "Thread payload"
// @Success     201 {object} handlers.ChatView
// @Failure     400 {object} handlers.ErrorResponse
// @Router      /chat_support [post]
func (h *Handlers) CreateChat(c *gin.Context) {
	var req CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	ch, err := h.chats.Create(c.Request.Context(), principal(c).UserID, req.Topic, req.IsSupport)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusCreated, newChatView(*ch))
}

// ListChats godoc
// @ID          listChats
// @Summary     List support threads
// @Description Regular users see enabled threads they are members of; staff
// @Description see enabled threads flagged for the support queue.
// @Tags        Chat
// @Produce     json
// @Param       X-User-ID    header string true  "User ID"
// @Param       X-User-Staff header string false "Staff flag"
// @Success     200 {array} handlers.ChatView
// @Router      /chat_support [get]
func (h *Handlers) ListChats(c *gin.Context) {
	p := principal(c)
	items, err := h.chats.List(c.Request.Context(), p.UserID, p.Staff)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newChatViews(items))
}

// GetChat godoc
// @ID          getChat
// @Summary     Retrieve a support thread
// @Description Visibility-scoped: threads outside the caller's scope surface
// @Description as not found.
// @Tags        Chat
// @Produce     json
// @Param       X-User-ID header string true "User ID"
// @Param       id        path   int    true "Thread ID"
// @Success     200 {object} handlers.ChatView
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /chat_support/{id} [get]
func (h *Handlers) GetChat(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	p := principal(c)
	ch, err := h.chats.Get(c.Request.Context(), id, p.UserID, p.Staff)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newChatView(*ch))
}

// UpdateChat godoc
// @ID          updateChat
// @Summary     Update a support thread
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       id   path int                        true "Thread ID"
// @Param       body body handlers.UpdateChatRequest true "Thread payload"
// @Success     200 {object} handlers.ChatView
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /chat_support/{id} [put]
func (h *Handlers) UpdateChat(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	var req UpdateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	ch, err := h.chats.Update(c.Request.Context(), id, req.Topic, req.Enabled, req.IsSupport)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, newChatView(*ch))
}

// DeleteChat godoc
// @ID          deleteChat
// @Summary     Delete a support thread
// @Tags        Chat
// @Param       id path int true "Thread ID"
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /chat_support/{id} [delete]
func (h *Handlers) DeleteChat(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	if err := h.chats.Delete(c.Request.Context(), id); err != nil {
		svcFail(c, err)
		return
	}
	noContent(c)
}

//
// Membership
//

// ConnectToChat godoc
// @ID          connectToChat
// @Summary     Connect the caller to a thread
// @Description Adds the caller to the member set. Connecting an existing
// @Description member is an error, not a no-op.
// @Tags        Chat
// @Produce     json
// @Param       X-User-ID header string true "User ID"
// @Param       id        path   int    true "Thread ID"
// @Success     200 {object} map[string]string "Detail message"
// @Failure     400 {object} handlers.ErrorResponse "Already a member"
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /chat_support/{id}/connect_support_to_chat [put]
func (h *Handlers) ConnectToChat(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	err := h.chats.Connect(c.Request.Context(), id, principal(c).UserID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyMember) {
			fail(c, http.StatusBadRequest, ErrCodeConflict, "User already connected to the chat.")
			return
		}
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"detail": "Support is successfully connected to the chat."})
}

// DisconnectFromChat godoc
// @ID          disconnectFromChat
// @Summary     Disconnect the caller from a thread
// @Description Removes the caller from the member set. Disconnecting a
// @Description non-member is an error, not a no-op.
// @Tags        Chat
// @Produce     json
// @Param       X-User-ID header string true "User ID"
// @Param       id        path   int    true "Thread ID"
// @Success     200 {object} map[string]string "Detail message"
// @Failure     400 {object} handlers.ErrorResponse "Not a member"
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /chat_support/{id}/disconnect_user_from_chat [put]
func (h *Handlers) DisconnectFromChat(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	err := h.chats.Disconnect(c.Request.Context(), id, principal(c).UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotMember) {
			fail(c, http.StatusBadRequest, ErrCodeConflict, "User not in chat.")
			return
		}
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"detail": "Support is successfully deleted from the chat."})
}

//
// Messages
//

// CreateChatMessage godoc
// @ID          createChatMessage
// @Summary     Post a message to a thread
// @Description The thread must be within the caller's visibility scope.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string                       true "User ID"
// @Param       id        path   int                          true "Thread ID"
// @Param       body      body   handlers.ChatMessageRequest true "Message payload"
// @Success     201 {object} domain.ChatMessage
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /chat_support/{id}/create_message [post]
func (h *Handlers) CreateChatMessage(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	p := principal(c)
	msg, err := h.chats.CreateMessage(c.Request.Context(), id, p.UserID, p.Staff, req.Text)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusCreated, msg)
}

// UpdateChatMessage godoc
// @ID          updateChatMessage
// @Summary     Edit a message
// @Description Author-scoped: editing another user's message surfaces as not
// @Description found.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header string                       true "User ID"
// @Param       id         path   int                          true "Thread ID"
// @Param       message_id path   int                          true "Message ID"
// @Param       body       body   handlers.ChatMessageRequest true "Message payload"
// @Success     200 {object} domain.ChatMessage
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /chat_support/{id}/update_message/{message_id} [put]
func (h *Handlers) UpdateChatMessage(c *gin.Context) {
	if _, okID := pathID(c, "id"); !okID {
		return
	}
	msgID, okID := pathID(c, "message_id")
	if !okID {
		return
	}
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	msg, err := h.chats.UpdateMessage(c.Request.Context(), msgID, principal(c).UserID, req.Text)
	if err != nil {
		svcFail(c, err)
		return
	}
	ok(c, http.StatusOK, msg)
}

// DeleteChatMessage godoc
// @ID          deleteChatMessage
// @Summary     Delete a message
// @Description Author-scoped: deleting another user's message surfaces as not
// @Description found.
// @Tags        Chat
// @Param       X-User-ID  header string true "User ID"
// @Param       id         path   int    true "Thread ID"
// @Param       message_id path   int    true "Message ID"
// @Success     204 {string} string "No Content"
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /chat_support/{id}/delete_message/{message_id} [delete]
func (h *Handlers) DeleteChatMessage(c *gin.Context) {
	if _, okID := pathID(c, "id"); !okID {
		return
	}
	msgID, okID := pathID(c, "message_id")
	if !okID {
		return
	}
	if err := h.chats.DeleteMessage(c.Request.Context(), msgID, principal(c).UserID); err != nil {
		svcFail(c, err)
		return
	}
	noContent(c)
}
