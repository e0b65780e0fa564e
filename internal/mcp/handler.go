package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/wedgeworks/printdesk/internal/domain/project"
	"github.com/wedgeworks/printdesk/internal/store"
)

// ProjectStore defines the store operations needed by the tool surface.
type ProjectStore interface {
	Create(ctx context.Context, req store.CreateRequest) (*project.Record, error)
	Get(ctx context.Context, id string) (*project.Record, error)
	Save(ctx context.Context, rec *project.Record) error
	ArchiveFile(ctx context.Context, id string, content []byte, originalFilename string) (string, error)
	ReadVersion(ctx context.Context, hash string) ([]byte, error)
	List(ctx context.Context, status project.Status) ([]project.Summary, error)
	RebuildIndex(ctx context.Context) error
}

// Handler implements the tool operations over a ProjectStore.
type Handler struct {
	store  ProjectStore
	logger *slog.Logger
}

// NewHandler creates a new tool handler.
func NewHandler(store ProjectStore, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) CreateProject(ctx context.Context, params CreateProjectParams) (*project.Record, error) {
	var status project.Status
	if params.Status != "" {
		var err error
		if status, err = project.ParseStatus(params.Status); err != nil {
			return nil, err
		}
	}
	return h.store.Create(ctx, store.CreateRequest{
		ID:   params.ID,
		Name: params.Name,
		Customer: project.Customer{
			Name:     params.CustomerName,
			Shipping: params.Shipping,
		},
		Responsible: params.Responsible,
		Status:      status,
		Quantity:    params.Quantity,
	})
}

func (h *Handler) GetProject(ctx context.Context, params GetProjectParams) (*project.Record, error) {
	return h.store.Get(ctx, params.ID)
}

func (h *Handler) ListProjects(ctx context.Context, params ListProjectsParams) (ListProjectsResponse, error) {
	var filter project.Status
	if params.Status != "" {
		var err error
		if filter, err = project.ParseStatus(params.Status); err != nil {
			return ListProjectsResponse{}, err
		}
	}
	rows, err := h.store.List(ctx, filter)
	if err != nil {
		return ListProjectsResponse{}, err
	}
	if rows == nil {
		rows = []project.Summary{}
	}
	return ListProjectsResponse{Projects: rows}, nil
}

func (h *Handler) UpdateStatus(ctx context.Context, params UpdateStatusParams) (*project.Record, error) {
	status, err := project.ParseStatus(params.Status)
	if err != nil {
		return nil, err
	}
	rec, err := h.store.Get(ctx, params.ID)
	if err != nil {
		return nil, err
	}
	rec.SetStatus(status, params.Actor)
	if err := h.store.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (h *Handler) AddComment(ctx context.Context, params AddCommentParams) (*project.Record, error) {
	rec, err := h.store.Get(ctx, params.ID)
	if err != nil {
		return nil, err
	}
	rec.AddComment(params.Author, params.Text)
	if err := h.store.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (h *Handler) EditComment(ctx context.Context, params EditCommentParams) (*project.Record, error) {
	rec, err := h.store.Get(ctx, params.ID)
	if err != nil {
		return nil, err
	}
	if err := rec.EditComment(params.Index, params.Text, params.Actor); err != nil {
		return nil, err
	}
	if err := h.store.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (h *Handler) RemoveComment(ctx context.Context, params RemoveCommentParams) (*project.Record, error) {
	rec, err := h.store.Get(ctx, params.ID)
	if err != nil {
		return nil, err
	}
	if err := rec.RemoveComment(params.Index, params.Actor); err != nil {
		return nil, err
	}
	if err := h.store.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (h *Handler) UpdateProject(ctx context.Context, params UpdateProjectParams) (*project.Record, error) {
	rec, err := h.store.Get(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	updated := false
	if params.Name != nil {
		rec.Rename(*params.Name, params.Actor)
		updated = true
	}
	if params.Responsible != nil {
		rec.SetResponsible(*params.Responsible, params.Actor)
		updated = true
	}
	if params.Quantity != nil {
		rec.SetQuantity(*params.Quantity, params.Actor)
		updated = true
	}
	if params.CustomerName != nil {
		rec.SetCustomer(project.Customer{Name: *params.CustomerName, Shipping: rec.Customer.Shipping}, params.Actor)
		updated = true
	}
	if params.Shipping != nil {
		rec.SetShipping(params.Shipping, params.Actor)
		updated = true
	}
	if params.Role != nil {
		rec.SetRole(params.Role.Role, params.Role.People, params.Actor)
		updated = true
	}
	if !updated {
		return nil, fmt.Errorf("%w: no fields to update", project.ErrInvalidInput)
	}

	if err := h.store.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (h *Handler) ArchiveFile(ctx context.Context, params ArchiveFileParams) (ArchiveFileResponse, error) {
	content, err := base64.StdEncoding.DecodeString(params.ContentBase64)
	if err != nil {
		return ArchiveFileResponse{}, fmt.Errorf("%w: decoding content: %v", project.ErrInvalidInput, err)
	}
	hash, err := h.store.ArchiveFile(ctx, params.ID, content, params.Filename)
	if err != nil {
		return ArchiveFileResponse{}, err
	}
	rec, err := h.store.Get(ctx, params.ID)
	if err != nil {
		return ArchiveFileResponse{}, err
	}
	return ArchiveFileResponse{
		Hash:    hash,
		Version: rec.Versions[len(rec.Versions)-1].Number,
	}, nil
}

func (h *Handler) GetVersion(ctx context.Context, params GetVersionParams) (GetVersionResponse, error) {
	content, err := h.store.ReadVersion(ctx, params.Hash)
	if err != nil {
		return GetVersionResponse{}, err
	}
	return GetVersionResponse{
		Hash:          params.Hash,
		ContentBase64: base64.StdEncoding.EncodeToString(content),
	}, nil
}

func (h *Handler) GetChangeLog(ctx context.Context, params GetChangeLogParams) (GetChangeLogResponse, error) {
	rec, err := h.store.Get(ctx, params.ID)
	if err != nil {
		return GetChangeLogResponse{}, err
	}
	entries := make([]project.ChangeEntry, len(rec.ChangeLog))
	copy(entries, rec.ChangeLog)
	return GetChangeLogResponse{Entries: entries}, nil
}

func (h *Handler) RebuildIndex(ctx context.Context, _ RebuildIndexParams) (RebuildIndexResponse, error) {
	if err := h.store.RebuildIndex(ctx); err != nil {
		return RebuildIndexResponse{}, err
	}
	rows, err := h.store.List(ctx, "")
	if err != nil {
		return RebuildIndexResponse{}, err
	}
	return RebuildIndexResponse{Projects: len(rows)}, nil
}
