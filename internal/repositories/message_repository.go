package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils"
	"github.com/google/uuid"
)

type MessageRepository interface {
	CreateMessage(ctx context.Context, message *models.ContactMessage) error
	GetMessageByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error)
	ListMessages(ctx context.Context, filter models.MessageFilter) ([]*models.ContactMessage, int, error)
	MarkRead(ctx context.Context, id uuid.UUID, read bool) error
	DeleteMessage(ctx context.Context, id uuid.UUID) error
}

type messageRepository struct {
	DB *sql.DB
}

func NewMessageRepo(db *sql.DB) MessageRepository {
	return &messageRepository{DB: db}
}

const messageColumns = `id, name, email, phone, subject, message, read, created_at`

func (r *messageRepository) CreateMessage(ctx context.Context, message *models.ContactMessage) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO contact_messages (name, email, phone, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, read, created_at
	`

	return r.DB.QueryRowContext(dbCtx, query, message.Name, message.Email, message.Phone, message.Subject, message.Message).
		Scan(&message.ID, &message.Read, &message.CreatedAt)
}

func (r *messageRepository) GetMessageByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	message := &models.ContactMessage{}

	err := r.DB.QueryRowContext(dbCtx, `SELECT `+messageColumns+` FROM contact_messages WHERE id = $1`, id).
		Scan(&message.ID, &message.Name, &message.Email, &message.Phone, &message.Subject, &message.Message, &message.Read, &message.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return message, nil
}

func (r *messageRepository) ListMessages(ctx context.Context, filter models.MessageFilter) ([]*models.ContactMessage, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	page, size := models.NormalizePage(filter.Page, filter.PageSize)

	var conditions []string
	var args []any

	if filter.UnreadOnly {
		conditions = append(conditions, "read = FALSE")
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d OR subject ILIKE $%d)", n, n, n))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM contact_messages`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	args = append(args, size, models.Offset(page, size))
	query := `SELECT ` + messageColumns + ` FROM contact_messages` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := []*models.ContactMessage{}

	for rows.Next() {
		message := &models.ContactMessage{}
		if err := rows.Scan(&message.ID, &message.Name, &message.Email, &message.Phone, &message.Subject, &message.Message, &message.Read, &message.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan message: %w", err)
		}

		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return messages, total, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, id uuid.UUID, read bool) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE contact_messages SET read = $1 WHERE id = $2`, read, id)
	if err != nil {
		return fmt.Errorf("failed to update message: %w", err)
	}

	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updated == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *messageRepository) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deleted == 0 {
		return sql.ErrNoRows
	}

	return nil
}
