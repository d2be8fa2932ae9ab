package mailin

import (
	"context"
	"log/slog"
	"strings"

	"snapwall/internal/domain"
	"snapwall/internal/modules/upload"
)

// Uploads is the slice of the lifecycle service the mail path needs: it
// only ever creates records born published.
type Uploads interface {
	CreatePublished(ctx context.Context, owner domain.User, attachments []string) (*upload.Upload, error)
}

// BlobStore matches the attachment store's Save.
type BlobStore interface {
	Save(content []byte, filename string) (string, error)
}

// Service turns parsed inbound mail into published uploads. It is the
// second producer feeding the upload collection: no draft phase, no
// attachment lock, and attachments the store rejects are dropped from
// the record instead of failing the ingestion.
type Service struct {
	uploads Uploads
	store   BlobStore
}

func NewService(uploads Uploads, store BlobStore) *Service {
	return &Service{uploads: uploads, store: store}
}

// Ingest persists msg as a published upload owned by a synthetic
// mail-derived profile and returns the stored record.
func (s *Service) Ingest(ctx context.Context, msg InboundMessage) (*upload.Upload, error) {
	keys := make([]string, 0, len(msg.Attachments))
	for _, att := range msg.Attachments {
		key, err := s.store.Save(att.Content, att.FileName)
		if err != nil {
			slog.Debug("dropping mail attachment", "from", msg.From, "filename", att.FileName, "err", err)
			continue
		}
		keys = append(keys, key)
	}

	u, err := s.uploads.CreatePublished(ctx, mailOwner(msg.From), keys)
	if err != nil {
		return nil, err
	}

	slog.Info("mail ingested", "from", msg.From, "upload", u.ID, "attachments", len(keys))
	return u, nil
}

// mailOwner builds the owner profile for a sender address. Mail senders
// have no provider identity, so the address doubles as the username.
func mailOwner(from string) domain.User {
	name := from
	if i := strings.IndexByte(from, '@'); i > 0 {
		name = from[:i]
	}
	return domain.User{Username: from, Name: name}
}
