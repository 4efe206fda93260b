// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"

	"github.com/brokerdash/backend/internal/domain/analytics"
	"github.com/brokerdash/backend/internal/domain/entity"
)

// ListOperationsInput represents the input for listing operations. Every
// criterion accepts "all" or an empty string for no filtering.
type ListOperationsInput struct {
	User   *entity.UserContext
	Status string
	Year   string
	Month  string
	Type   string
}

// ListOperationsOutput represents the output of listing operations.
type ListOperationsOutput struct {
	Operations []entity.Operation
	Filter     analytics.Filter
}

// ListOperationsUseCase handles listing the operations matching a filter.
type ListOperationsUseCase struct {
	loader *Loader
}

// NewListOperationsUseCase creates a new ListOperationsUseCase instance.
func NewListOperationsUseCase(loader *Loader) *ListOperationsUseCase {
	return &ListOperationsUseCase{
		loader: loader,
	}
}

// Execute returns the visible operations matching every criterion, in load order.
func (uc *ListOperationsUseCase) Execute(ctx context.Context, input ListOperationsInput) (*ListOperationsOutput, error) {
	if err := requireUser(input.User); err != nil {
		return nil, err
	}

	filter, err := analytics.ParseFilter(input.Status, input.Year, input.Month, input.Type)
	if err != nil {
		return nil, err
	}

	ops, err := uc.loader.Operations(ctx, input.User)
	if err != nil {
		return nil, err
	}

	return &ListOperationsOutput{
		Operations: analytics.FilterOperations(ops, filter),
		Filter:     filter,
	}, nil
}
