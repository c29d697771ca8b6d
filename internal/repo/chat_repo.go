// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the support
// chat: threads, the explicit membership join, and messages.
//
// Visibility scoping lives here rather than in a permission layer:
//   - regular users only ever see enabled threads they are members of;
//   - staff only see enabled threads flagged as support queues;
//   - message mutation lookups are scoped to (id, user), so a foreign
//     message surfaces as ErrNotFound instead of a forbidden error.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dkosteva/go-airport-backend/internal/domain"
)

// chatPreloads attaches members and messages (with stable message ordering).
func chatPreloads(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Members").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		})
}

// visibleChats narrows the thread set to what the given caller may see.
func visibleChats(q *gorm.DB, userID string, staff bool) *gorm.DB {
	q = q.Where("enabled = ?", true)
	if staff {
		return q.Where("is_support = ?", true)
	}
	return q.Where(
		"id IN (?)",
		q.Session(&gorm.Session{NewDB: true}).
			Model(&domain.ChatMember{}).
			Select("chat_support_id").
			Where("user_id = ?", userID),
	)
}

// CreateChatSupport inserts a thread and auto-joins the author to the
// member set, in one transaction.
func CreateChatSupport(ctx context.Context, db *gorm.DB, c *domain.ChatSupport) error {
	c.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		member := &domain.ChatMember{
			ChatSupportID: c.ID,
			UserID:        c.AuthorID,
			CreatedAt:     time.Now().UTC(),
		}
		return tx.Create(member).Error
	})
}

// ListChatSupports returns the threads visible to the caller, oldest first.
func ListChatSupports(ctx context.Context, db *gorm.DB, userID string, staff bool) ([]domain.ChatSupport, error) {
	var out []domain.ChatSupport
	err := chatPreloads(visibleChats(db.WithContext(ctx).Model(&domain.ChatSupport{}), userID, staff)).
		Order("id").
		Find(&out).Error
	return out, err
}

// GetChatSupport fetches one thread by id subject to the caller's
// visibility, or ErrNotFound.
func GetChatSupport(ctx context.Context, db *gorm.DB, id uint, userID string, staff bool) (*domain.ChatSupport, error) {
	var c domain.ChatSupport
	err := chatPreloads(visibleChats(db.WithContext(ctx).Model(&domain.ChatSupport{}), userID, staff)).
		Where("chat_supports.id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetChatSupportAny fetches a thread by id without visibility scoping,
// members and messages included. Used by the staff-only membership actions
// and by the create/update read-backs, which operate on any thread.
func GetChatSupportAny(ctx context.Context, db *gorm.DB, id uint) (*domain.ChatSupport, error) {
	var c domain.ChatSupport
	if err := chatPreloads(db.WithContext(ctx)).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateChatSupport saves the mutable thread fields. Returns ErrNotFound
// when missing.
func UpdateChatSupport(ctx context.Context, db *gorm.DB, c *domain.ChatSupport) error {
	res := db.WithContext(ctx).Model(&domain.ChatSupport{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"topic":      c.Topic,
			"enabled":    c.Enabled,
			"is_support": c.IsSupport,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteChatSupport removes a thread by id. Returns ErrNotFound when missing.
func DeleteChatSupport(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.ChatSupport{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsChatMember reports whether userID belongs to the thread's member set.
func IsChatMember(ctx context.Context, db *gorm.DB, chatID uint, userID string) (bool, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.ChatMember{}).
		Where("chat_support_id = ? AND user_id = ?", chatID, userID).
		Count(&total).Error
	return total > 0, err
}

// AddChatMember inserts a membership row.
func AddChatMember(ctx context.Context, db *gorm.DB, chatID uint, userID string) error {
	m := &domain.ChatMember{
		ChatSupportID: chatID,
		UserID:        userID,
		CreatedAt:     time.Now().UTC(),
	}
	return db.WithContext(ctx).Create(m).Error
}

// RemoveChatMember deletes a membership row. Returns ErrNotFound when the
// pair does not exist.
func RemoveChatMember(ctx context.Context, db *gorm.DB, chatID uint, userID string) error {
	res := db.WithContext(ctx).
		Where("chat_support_id = ? AND user_id = ?", chatID, userID).
		Delete(&domain.ChatMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateChatMessage inserts a message row.
func CreateChatMessage(ctx context.Context, db *gorm.DB, m *domain.ChatMessage) error {
	m.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(m).Error
}

// GetChatMessageOwned fetches a message scoped to its author. A foreign or
// missing message yields ErrNotFound.
func GetChatMessageOwned(ctx context.Context, db *gorm.DB, id uint, userID string) (*domain.ChatMessage, error) {
	var m domain.ChatMessage
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateChatMessageText updates the text of a message owned by userID.
// Returns ErrNotFound when the (id, user) lookup matches nothing.
func UpdateChatMessageText(ctx context.Context, db *gorm.DB, id uint, userID, text string) error {
	res := db.WithContext(ctx).Model(&domain.ChatMessage{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("text", text)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteChatMessageOwned deletes a message owned by userID. Returns
// ErrNotFound when the (id, user) lookup matches nothing.
func DeleteChatMessageOwned(ctx context.Context, db *gorm.DB, id uint, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.ChatMessage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
