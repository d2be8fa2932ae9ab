package upload

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"snapwall/internal/domain"
	"snapwall/internal/storage"
)

// BlobStore is the content-addressed attachment store.
type BlobStore interface {
	Save(content []byte, filename string) (string, error)
}

// Notifier receives finalized records after a successful transition.
// Both calls are best-effort: the service never waits on them and never
// fails a transition because of them.
type Notifier interface {
	// Published fires for the HTTP publish transition (all sinks).
	Published(v any)
	// Ingested fires for mail-origin records (broadcast sink only).
	Ingested(v any)
}

// Service owns the upload state machine: draft creation, attachment
// addition and the one-shot publish transition. All gating is pushed into
// conditional reads and writes on the repository, so concurrent callers
// racing on the same upload resolve to exactly one winner.
type Service struct {
	repo     Repository
	store    BlobStore
	notifier Notifier
}

func NewService(repo Repository, store BlobStore, notifier Notifier) *Service {
	return &Service{repo: repo, store: store, notifier: notifier}
}

// Create makes a new draft owned by owner and returns it.
func (s *Service) Create(ctx context.Context, owner domain.User) (*Upload, error) {
	if owner == (domain.User{}) {
		return nil, errors.New("owner must be provided to create an upload")
	}

	u := &Upload{
		ID:                         uuid.New().String(),
		OwnerID:                    owner.ID,
		Owner:                      owner,
		Attachments:                []string{},
		Published:                  false,
		AllowAdditionalAttachments: true,
		Timestamp:                  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		slog.Error("creating upload", "owner", owner.ID, "err", err)
		return nil, ErrCreateFailed
	}

	return u, nil
}

// AddAttachment stores content and appends its key to the upload,
// locking the upload against further additions. The eligibility read and
// the append are separate statements, but the append re-checks the gate
// so a racing second caller yields ErrNoEligibleUpload rather than a
// double append.
func (s *Service) AddAttachment(ctx context.Context, id string, ownerID int64, content []byte, filename string) error {
	u, err := s.repo.FindForAttachment(ctx, id, ownerID)
	if err != nil {
		slog.Error("looking up upload for attachment", "upload", id, "err", err)
		return ErrAttachmentPersistFailed
	}
	if u == nil {
		return ErrNoEligibleUpload
	}

	key, err := s.store.Save(content, filename)
	if errors.Is(err, storage.ErrRejected) {
		return ErrIllegalAttachment
	}
	if err != nil {
		slog.Error("storing attachment", "upload", id, "filename", filename, "err", err)
		return ErrAttachmentPersistFailed
	}

	ok, err := s.repo.AppendAttachment(ctx, u.ID, append(u.Attachments, key))
	if err != nil {
		slog.Error("appending attachment", "upload", id, "key", key, "err", err)
		return ErrAttachmentPersistFailed
	}
	if !ok {
		return ErrNoEligibleUpload
	}

	return nil
}

// Publish flips the upload to its terminal state and fans the finalized
// record out asynchronously. Fanout failures are logged by the sinks and
// never surface here.
func (s *Service) Publish(ctx context.Context, id string, ownerID int64) error {
	u, err := s.repo.FindForPublish(ctx, id, ownerID)
	if err != nil {
		slog.Error("looking up upload for publish", "upload", id, "err", err)
		return ErrPublishFailed
	}
	if u == nil {
		return ErrNoEligibleUpload
	}
	if len(u.Attachments) == 0 {
		return ErrAttachmentRequired
	}

	ok, err := s.repo.MarkPublished(ctx, u.ID)
	if err != nil {
		slog.Error("publishing upload", "upload", id, "err", err)
		return ErrPublishFailed
	}
	if !ok {
		return ErrNoEligibleUpload
	}

	u.Published = true
	if s.notifier != nil {
		go s.notifier.Published(u)
	}

	return nil
}

// CreatePublished persists a record born in the terminal state and hands
// it to the ingest fanout. It is the persistence primitive behind the
// mail ingestion path; the draft lifecycle never goes through here.
func (s *Service) CreatePublished(ctx context.Context, owner domain.User, attachments []string) (*Upload, error) {
	u := &Upload{
		ID:                         uuid.New().String(),
		OwnerID:                    owner.ID,
		Owner:                      owner,
		Attachments:                attachments,
		Published:                  true,
		AllowAdditionalAttachments: false,
		Timestamp:                  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		slog.Error("creating published upload", "owner", owner.Username, "err", err)
		return nil, ErrCreateFailed
	}

	if s.notifier != nil {
		go s.notifier.Ingested(u)
	}

	return u, nil
}

// List returns published uploads newest first. startingFrom is an
// exclusive cursor: only records strictly older are returned.
func (s *Service) List(ctx context.Context, startingFrom *time.Time, limit int) ([]Upload, error) {
	uploads, err := s.repo.ListPublished(ctx, startingFrom, limit)
	if err != nil {
		slog.Error("listing uploads", "err", err)
		return nil, ErrQueryFailed
	}
	return uploads, nil
}
