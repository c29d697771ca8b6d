// Package services – ChatService
//
// This file implements the ChatService, which manages support threads,
// their explicit membership set, and chat messages. Topics are normalized
// and clipped the same way chat titles are elsewhere in the codebase.
// Membership transitions are deliberately strict: connecting an existing
// member or disconnecting a non-member is an error, not a no-op.
package services

import (
	"context"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/dkosteva/go-airport-backend/internal/domain"
	"github.com/dkosteva/go-airport-backend/internal/repo"
)

// ChatService provides support-thread and message operations. Visibility
// rules are enforced in the repository queries; this layer adds input
// validation and the strict membership state machine.
type ChatService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// TopicMaxLen caps stored topics by rune length.
	TopicMaxLen int
	// TopicLocale is retained for locale-aware topic handling.
	TopicLocale language.Tag
}

// NewChatService constructs a ChatService with sane defaults for topic
// handling.
func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{
		DB:          db,
		TopicMaxLen: 255,
		TopicLocale: language.Und,
	}
}

// clip truncates a topic to the configured maximum rune length.
func (s *ChatService) clip(topic string) string {
	if s.TopicMaxLen > 0 && utf8.RuneCountInString(topic) > s.TopicMaxLen {
		return string([]rune(topic)[:s.TopicMaxLen])
	}
	return topic
}

// Create opens a new support thread authored by userID. The author is
// auto-joined to the member set. A blank topic falls back to a default.
func (s *ChatService) Create(ctx context.Context, userID, topic string, isSupport bool) (*domain.ChatSupport, error) {
	topic = normalizeName(topic)
	if topic == "" {
		topic = "Support request"
	}
	c := &domain.ChatSupport{
		Topic:     s.clip(topic),
		Enabled:   true,
		IsSupport: isSupport,
		AuthorID:  userID,
	}
	if err := repo.CreateChatSupport(ctx, s.DB, c); err != nil {
		return nil, err
	}
	return repo.GetChatSupportAny(ctx, s.DB, c.ID)
}

// List returns the threads visible to the caller: members-only for regular
// users, the support queue for staff.
func (s *ChatService) List(ctx context.Context, userID string, staff bool) ([]domain.ChatSupport, error) {
	return repo.ListChatSupports(ctx, s.DB, userID, staff)
}

// Get fetches a visible thread or ErrChatNotFound.
func (s *ChatService) Get(ctx context.Context, id uint, userID string, staff bool) (*domain.ChatSupport, error) {
	c, err := repo.GetChatSupport(ctx, s.DB, id, userID, staff)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrChatNotFound
	}
	return c, err
}

// Update saves the mutable thread fields.
func (s *ChatService) Update(ctx context.Context, id uint, topic string, enabled, isSupport bool) (*domain.ChatSupport, error) {
	topic = normalizeName(topic)
	if topic == "" {
		return nil, NewValidationError("topic", "must not be empty")
	}
	c := &domain.ChatSupport{ID: id, Topic: s.clip(topic), Enabled: enabled, IsSupport: isSupport}
	if err := repo.UpdateChatSupport(ctx, s.DB, c); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	return repo.GetChatSupportAny(ctx, s.DB, id)
}

// Delete removes a thread.
func (s *ChatService) Delete(ctx context.Context, id uint) error {
	err := repo.DeleteChatSupport(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrChatNotFound
	}
	return err
}

// Connect adds userID to the thread's member set. Connecting an existing
// member fails with ErrAlreadyMember and leaves membership unchanged. The
// check and the insert run in one transaction.
func (s *ChatService) Connect(ctx context.Context, chatID uint, userID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetChatSupportAny(ctx, tx, chatID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrChatNotFound
			}
			return err
		}
		member, err := repo.IsChatMember(ctx, tx, chatID, userID)
		if err != nil {
			return err
		}
		if member {
			return ErrAlreadyMember
		}
		if err := repo.AddChatMember(ctx, tx, chatID, userID); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
				return ErrAlreadyMember
			}
			return err
		}
		return nil
	})
}

// Disconnect removes userID from the thread's member set. Disconnecting a
// non-member fails with ErrNotMember.
func (s *ChatService) Disconnect(ctx context.Context, chatID uint, userID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetChatSupportAny(ctx, tx, chatID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrChatNotFound
			}
			return err
		}
		if err := repo.RemoveChatMember(ctx, tx, chatID, userID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrNotMember
			}
			return err
		}
		return nil
	})
}

// CreateMessage posts a message authored by userID into a thread the caller
// can see.
func (s *ChatService) CreateMessage(ctx context.Context, chatID uint, userID string, staff bool, text string) (*domain.ChatMessage, error) {
	text = normalizeName(text)
	if text == "" {
		return nil, NewValidationError("text", "must not be empty")
	}
	if _, err := repo.GetChatSupport(ctx, s.DB, chatID, userID, staff); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	m := &domain.ChatMessage{Text: text, UserID: userID, ChatSupportID: chatID}
	if err := repo.CreateChatMessage(ctx, s.DB, m); err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateMessage edits a message the caller authored. The lookup is scoped
// to (id, user), so editing a foreign message yields ErrMessageNotFound.
func (s *ChatService) UpdateMessage(ctx context.Context, messageID uint, userID, text string) (*domain.ChatMessage, error) {
	text = normalizeName(text)
	if text == "" {
		return nil, NewValidationError("text", "must not be empty")
	}
	if err := repo.UpdateChatMessageText(ctx, s.DB, messageID, userID, text); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return repo.GetChatMessageOwned(ctx, s.DB, messageID, userID)
}

// DeleteMessage removes a message the caller authored; same (id, user)
// scoping as UpdateMessage.
func (s *ChatService) DeleteMessage(ctx context.Context, messageID uint, userID string) error {
	err := repo.DeleteChatMessageOwned(ctx, s.DB, messageID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrMessageNotFound
	}
	return err
}
