package httpapi

import (
	"context"
	"net/http"

	"golang.org/x/sync/singleflight"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
	"github.com/alexisbeaulieu97/ideavault/internal/ports"
	apperrors "github.com/alexisbeaulieu97/ideavault/pkg/errors"
)

const (
	opListIdeas  = "list ideas"
	opCreateIdea = "create idea"
)

// StoreGateway talks to the record store's /ideas endpoint.
type StoreGateway struct {
	client *client
	group  singleflight.Group
}

var _ ports.IdeaStore = (*StoreGateway)(nil)

// NewStoreGateway builds a record store gateway.
func NewStoreGateway(opts Options) (*StoreGateway, error) {
	c, err := newClient(opts, "store_gateway")
	if err != nil {
		return nil, err
	}
	return &StoreGateway{client: c}, nil
}

// ListIdeas fetches every stored idea. Concurrent callers share one request,
// which runs detached from any single caller's cancellation; each caller
// still stops waiting when its own ctx is done.
func (g *StoreGateway) ListIdeas(ctx context.Context) ([]idea.Record, error) {
	shareCtx := context.WithoutCancel(ctx)
	ch := g.group.DoChan(opListIdeas, func() (interface{}, error) {
		var payload []ideaDTO
		status, err := g.client.do(shareCtx, http.MethodGet, "/ideas", nil, &payload)
		if err != nil {
			return nil, apperrors.NewTransportError(opListIdeas, status, err)
		}
		records := make([]idea.Record, 0, len(payload))
		for _, dto := range payload {
			records = append(records, dto.toDomain())
		}
		return records, nil
	})

	var result singleflight.Result
	select {
	case <-ctx.Done():
		err := apperrors.NewTransportError(opListIdeas, 0, ctx.Err())
		g.client.logger.Warn(ctx, "list ideas abandoned", "error", err)
		return nil, err
	case result = <-ch:
	}
	if result.Err != nil {
		g.client.logger.Warn(ctx, "list ideas failed", "error", result.Err)
		return nil, result.Err
	}

	records := result.Val.([]idea.Record)
	if result.Shared {
		// Each caller gets its own copy of the shared result.
		copied := make([]idea.Record, len(records))
		for i, record := range records {
			copied[i] = record.Clone()
		}
		records = copied
	}
	g.client.logger.Debug(ctx, "ideas listed", "count", len(records), "shared", result.Shared)
	return records, nil
}

// CreateIdea validates and persists a draft. Validation failures never reach
// the network.
func (g *StoreGateway) CreateIdea(ctx context.Context, draft idea.Draft) (idea.Record, error) {
	if err := draft.Validate(); err != nil {
		return idea.Record{}, err
	}
	draft = draft.Normalized()

	var dto ideaDTO
	status, err := g.client.do(ctx, http.MethodPost, "/ideas", createRequest{
		Title:       draft.Title,
		Description: draft.Description,
		Category:    string(draft.Category),
	}, &dto)
	if err != nil {
		g.client.logger.Warn(ctx, "create idea failed", "error", err)
		return idea.Record{}, apperrors.NewTransportError(opCreateIdea, status, err)
	}

	record := dto.toDomain()
	if record.ID == "" {
		return idea.Record{}, apperrors.NewTransportError(opCreateIdea, status, errMissingID)
	}
	record.Status = idea.StatusSubmitted
	record.Evaluation = nil
	if record.Title == "" {
		record.Title = draft.Title
	}
	if record.Description == "" {
		record.Description = draft.Description
	}
	if record.Category == idea.CategoryNone {
		record.Category = draft.Category
	}

	g.client.logger.Info(ctx, "idea created", "idea_id", record.ID)
	return record, nil
}
