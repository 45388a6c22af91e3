package repository

import (
	"context"
	"database/sql"
	"time"

	"questforge/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

// --- Profile Operations ---

func (r *sqliteRepository) CreateProfile(ctx context.Context, profile *model.Profile) error {
	query := `
		INSERT INTO profiles (id, user_id, display_name, current_level, total_xp, current_streak, last_active_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.UserID,
		profile.DisplayName,
		profile.CurrentLevel,
		profile.TotalXP,
		profile.CurrentStreak,
		profile.LastActiveDate,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	return err
}

func (r *sqliteRepository) GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	query := `
		SELECT id, user_id, display_name, current_level, total_xp, current_streak, last_active_date, created_at, updated_at
		FROM profiles WHERE user_id = ?
	`
	row := r.db.QueryRowContext(ctx, query, userID)

	var profile model.Profile
	var displayName sql.NullString
	var lastActive sql.NullTime
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&displayName,
		&profile.CurrentLevel,
		&profile.TotalXP,
		&profile.CurrentStreak,
		&lastActive,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if displayName.Valid {
		profile.DisplayName = &displayName.String
	}
	if lastActive.Valid {
		profile.LastActiveDate = &lastActive.Time
	}

	return &profile, nil
}

func (r *sqliteRepository) UpdateProfileProgress(ctx context.Context, userID string, totalXP, level int, lastActive time.Time) error {
	query := "UPDATE profiles SET total_xp = ?, current_level = ?, last_active_date = ?, updated_at = ? WHERE user_id = ?"
	_, err := r.db.ExecContext(ctx, query, totalXP, level, lastActive, time.Now().UTC(), userID)
	return err
}

func (r *sqliteRepository) UpdateProfileStreak(ctx context.Context, userID string, streak int, lastActive time.Time) error {
	query := "UPDATE profiles SET current_streak = ?, last_active_date = ?, updated_at = ? WHERE user_id = ?"
	_, err := r.db.ExecContext(ctx, query, streak, lastActive, time.Now().UTC(), userID)
	return err
}

func (r *sqliteRepository) UpdateDisplayName(ctx context.Context, userID, displayName string) error {
	query := "UPDATE profiles SET display_name = ?, updated_at = ? WHERE user_id = ?"
	_, err := r.db.ExecContext(ctx, query, displayName, time.Now().UTC(), userID)
	return err
}

// --- Quest Operations ---

func (r *sqliteRepository) CreateQuest(ctx context.Context, quest *model.Quest) error {
	query := `
		INSERT INTO quests (id, user_id, title, description, xp_reward, is_completed, completed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		quest.ID,
		quest.UserID,
		quest.Title,
		quest.Description,
		quest.XPReward,
		quest.IsCompleted,
		quest.CompletedAt,
		quest.CreatedAt,
	)
	return err
}

func (r *sqliteRepository) GetQuest(ctx context.Context, questID string) (*model.Quest, error) {
	query := `
		SELECT id, user_id, title, description, xp_reward, is_completed, completed_at, created_at
		FROM quests WHERE id = ?
	`
	row := r.db.QueryRowContext(ctx, query, questID)

	quest, err := scanQuest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return quest, nil
}

func (r *sqliteRepository) GetQuests(ctx context.Context, userID string) ([]model.Quest, error) {
	// Newest first: this ordering is for display only.
	query := `
		SELECT id, user_id, title, description, xp_reward, is_completed, completed_at, created_at
		FROM quests WHERE user_id = ? ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quests []model.Quest
	for rows.Next() {
		quest, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		quests = append(quests, *quest)
	}
	return quests, rows.Err()
}

func (r *sqliteRepository) MarkQuestCompleted(ctx context.Context, questID string, completedAt time.Time) error {
	query := "UPDATE quests SET is_completed = TRUE, completed_at = ? WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, completedAt, questID)
	return err
}

func (r *sqliteRepository) DeleteQuest(ctx context.Context, questID string) error {
	query := "DELETE FROM quests WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, questID)
	return err
}

// --- Chat Message Operations ---

func (r *sqliteRepository) AddChatMessage(ctx context.Context, message *model.ChatMessage) error {
	query := "INSERT INTO chat_messages (id, user_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query,
		message.ID,
		message.UserID,
		message.Role,
		message.Content,
		message.CreatedAt,
	)
	return err
}

func (r *sqliteRepository) GetChatMessages(ctx context.Context, userID string) ([]model.ChatMessage, error) {
	query := `
		SELECT id, user_id, role, content, created_at
		FROM chat_messages WHERE user_id = ? ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.ChatMessage
	for rows.Next() {
		var msg model.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type scanner interface {
	Scan(dest ...any) error
}

func scanQuest(s scanner) (*model.Quest, error) {
	var quest model.Quest
	var description sql.NullString
	var completedAt sql.NullTime

	err := s.Scan(
		&quest.ID,
		&quest.UserID,
		&quest.Title,
		&description,
		&quest.XPReward,
		&quest.IsCompleted,
		&completedAt,
		&quest.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		quest.Description = &description.String
	}
	if completedAt.Valid {
		quest.CompletedAt = &completedAt.Time
	}

	return &quest, nil
}
