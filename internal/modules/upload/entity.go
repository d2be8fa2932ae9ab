package upload

import (
	"time"

	"snapwall/internal/domain"
)

// Upload is one user submission moving through draft -> attachments ->
// published. Published is terminal; no mutation is permitted afterwards.
//
// OwnerID duplicates Owner.ID as a plain column so eligibility filters can
// run inside a single conditional statement; Owner itself is the full
// profile snapshot taken at creation.
type Upload struct {
	ID                         string      `gorm:"column:id;primaryKey" json:"id"`
	OwnerID                    int64       `gorm:"column:owner_id;index" json:"-"`
	Owner                      domain.User `gorm:"column:owner;type:json;serializer:json" json:"user"`
	Attachments                []string    `gorm:"column:attachments;type:json;serializer:json" json:"attachments"`
	Published                  bool        `gorm:"column:published;index" json:"published"`
	AllowAdditionalAttachments bool        `gorm:"column:allow_additional_attachments" json:"allowAdditionalAttachments"`
	Timestamp                  time.Time   `gorm:"column:timestamp;index" json:"timestamp"`
}

func (Upload) TableName() string { return "uploads" }
