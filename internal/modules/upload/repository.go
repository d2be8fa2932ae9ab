package upload

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Repository persists uploads. Every state transition is a single
// conditional statement against the collection: the filter and the
// mutation travel together, so two racing callers can never both pass a
// gate (one of them sees zero rows affected).
type Repository interface {
	Create(ctx context.Context, u *Upload) error

	// FindForAttachment returns the upload only when it exists, belongs to
	// ownerID, still accepts attachments and is unpublished. (nil, nil)
	// means no eligible record.
	FindForAttachment(ctx context.Context, id string, ownerID int64) (*Upload, error)

	// AppendAttachment replaces the attachment list and drops the
	// allow-additional flag in one conditional update. Returns false when
	// the record no longer matched the gate at write time.
	AppendAttachment(ctx context.Context, id string, attachments []string) (bool, error)

	// FindForPublish returns the upload only when it exists, belongs to
	// ownerID and is unpublished. (nil, nil) means no eligible record.
	FindForPublish(ctx context.Context, id string, ownerID int64) (*Upload, error)

	// MarkPublished flips published conditionally on it still being false.
	// Returns false when the record was already published (or gone).
	MarkPublished(ctx context.Context, id string) (bool, error)

	// ListPublished returns published uploads newest first, optionally
	// restricted to timestamps strictly before startingFrom.
	ListPublished(ctx context.Context, startingFrom *time.Time, limit int) ([]Upload, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *Upload) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindForAttachment(ctx context.Context, id string, ownerID int64) (*Upload, error) {
	var u Upload
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ? AND allow_additional_attachments = ? AND published = ?",
			id, ownerID, true, false).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) AppendAttachment(ctx context.Context, id string, attachments []string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Upload{}).
		Where("id = ? AND allow_additional_attachments = ? AND published = ?", id, true, false).
		Select("attachments", "allow_additional_attachments").
		Updates(Upload{Attachments: attachments, AllowAdditionalAttachments: false})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) FindForPublish(ctx context.Context, id string, ownerID int64) (*Upload, error) {
	var u Upload
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ? AND published = ?", id, ownerID, false).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) MarkPublished(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Upload{}).
		Where("id = ? AND published = ?", id, false).
		Update("published", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) ListPublished(ctx context.Context, startingFrom *time.Time, limit int) ([]Upload, error) {
	q := r.db.WithContext(ctx).Where("published = ?", true)
	if startingFrom != nil {
		q = q.Where("timestamp < ?", *startingFrom)
	}

	var uploads []Upload
	err := q.Order("timestamp DESC").Limit(limit).Find(&uploads).Error
	return uploads, err
}
