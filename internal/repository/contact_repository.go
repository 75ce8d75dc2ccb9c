package repository

import (
	"context"

	"tenant-portal-svc/internal/models"
	"tenant-portal-svc/internal/upstream"
)

const (
	contactPath        = "/api/lienhe"
	contactRepliesPath = "/api/k_lienhe/phan-hoi"
)

// ContactRepository sends messages to the landlord and reads the answers
type ContactRepository interface {
	Create(ctx context.Context, token string, msg models.ContactMessage) error
	Replies(ctx context.Context, token string) ([]models.ContactReply, error)
}

// contactRepository implements ContactRepository
type contactRepository struct {
	client *upstream.Client
}

// NewContactRepository creates a new instance of ContactRepository
func NewContactRepository(client *upstream.Client) ContactRepository {
	return &contactRepository{
		client: client,
	}
}

// Create posts a contact message
func (r *contactRepository) Create(ctx context.Context, token string, msg models.ContactMessage) error {
	_, err := r.client.Post(ctx, token, contactPath, map[string]any{
		"KhachHangID": numericID(msg.CustomerID),
		"PhongID":     numericID(msg.RoomID),
		"LyDoLienHe":  msg.Reason,
		"NoiDung":     msg.Content,
		"TrangThai":   msg.Status,
		"Time":        msg.SentAt,
	})
	return err
}

// Replies lists the tenant's messages with the landlord's answers
func (r *contactRepository) Replies(ctx context.Context, token string) ([]models.ContactReply, error) {
	resp, err := r.client.Get(ctx, token, contactRepliesPath)
	if err != nil {
		return nil, err
	}

	items := upstream.ListOf(resp.JSON(), "data")
	replies := make([]models.ContactReply, 0, len(items))
	for _, v := range items {
		replies = append(replies, models.ContactReply{
			ID:            upstream.StringOf(v, "LienHeID", "id"),
			Reason:        upstream.StringOf(v, "LyDoLienHe"),
			Content:       upstream.StringOf(v, "NoiDung"),
			Status:        upstream.StringOf(v, "TrangThai"),
			DisplayStatus: upstream.StringOf(v, "TrangThaiHienThi"),
			Reply:         upstream.StringOf(v, "PhanHoi"),
			RepliedAt:     upstream.StringOf(v, "ThoiGianPhanHoi"),
			SentAt:        upstream.StringOf(v, "Time"),
		})
	}
	return replies, nil
}
