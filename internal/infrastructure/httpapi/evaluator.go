package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
	"github.com/alexisbeaulieu97/ideavault/internal/ports"
	apperrors "github.com/alexisbeaulieu97/ideavault/pkg/errors"
)

var (
	errMissingID     = errors.New("response carries no id")
	errMissingScores = errors.New("response is missing one or more scores")
)

// EvaluationGateway talks to the evaluation service's /evaluate endpoint.
type EvaluationGateway struct {
	client *client
}

var _ ports.Evaluator = (*EvaluationGateway)(nil)

// NewEvaluationGateway builds an evaluation service gateway.
func NewEvaluationGateway(opts Options) (*EvaluationGateway, error) {
	c, err := newClient(opts, "evaluation_gateway")
	if err != nil {
		return nil, err
	}
	return &EvaluationGateway{client: c}, nil
}

// Evaluate requests scores for one idea. It never retries.
func (g *EvaluationGateway) Evaluate(ctx context.Context, record idea.Record) (*idea.Evaluation, error) {
	var dto evaluationDTO
	status, err := g.client.do(ctx, http.MethodPost, "/evaluate", evaluateRequest{
		ID:          record.ID,
		RowNumber:   record.RowNumber,
		Title:       record.Title,
		Description: record.Description,
		Category:    string(record.Category),
	}, &dto)
	if err != nil {
		return nil, apperrors.NewEvaluationError(record.ID, status, err)
	}
	if !dto.complete() {
		return nil, apperrors.NewEvaluationError(record.ID, status, errMissingScores)
	}

	return dto.toDomain(), nil
}
