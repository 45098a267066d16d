package postgres

import (
	"context"
	"database/sql"
	"time"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/repository"
)

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, m *domain.Message) error {
	query := `INSERT INTO messages (sender_id, receiver_id, content, created_on) VALUES ($1, $2, $3, $4) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, m.SenderID, m.ReceiverID, m.Content, time.Now()).Scan(&m.ID, &m.CreatedOn)
}

func (r *messageRepository) ListConversation(ctx context.Context, userID, otherID int32) ([]domain.Message, error) {
	query := `SELECT m.id, m.sender_id, m.receiver_id, m.content, m.created_on, s.full_name, rcv.full_name
	          FROM messages m
	          JOIN users s ON s.id = m.sender_id
	          JOIN users rcv ON rcv.id = m.receiver_id
	          WHERE (m.sender_id = $1 AND m.receiver_id = $2) OR (m.sender_id = $2 AND m.receiver_id = $1)
	          ORDER BY m.created_on`
	rows, err := r.db.QueryContext(ctx, query, userID, otherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedOn, &m.SenderName, &m.ReceiverName); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// ListPartners returns the distinct users this user has exchanged messages
// with, most recent conversation first.
func (r *messageRepository) ListPartners(ctx context.Context, userID int32) ([]domain.User, error) {
	query := `SELECT u.id, u.full_name, u.email, u.phone, u.role, u.status, u.created_on
	          FROM users u
	          JOIN (
	            SELECT CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END AS partner_id,
	                   max(created_on) AS last_message_on
	            FROM messages
	            WHERE sender_id = $1 OR receiver_id = $1
	            GROUP BY 1
	          ) p ON p.partner_id = u.id
	          ORDER BY p.last_message_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.Role, &u.Status, &u.CreatedOn); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
