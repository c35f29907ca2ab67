package tag

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fin-mate/backend/internal/application/adapter"
	"github.com/fin-mate/backend/internal/domain/entity"
)

// ListTagsInput represents the input for listing tags.
type ListTagsInput struct {
	UserID uuid.UUID
}

// ListTagsOutput represents the output of listing tags.
type ListTagsOutput struct {
	Tags []*entity.Tag
}

// ListTagsUseCase handles tag listing logic.
type ListTagsUseCase struct {
	tagRepo adapter.TagRepository
}

// NewListTagsUseCase creates a new ListTagsUseCase instance.
func NewListTagsUseCase(tagRepo adapter.TagRepository) *ListTagsUseCase {
	return &ListTagsUseCase{
		tagRepo: tagRepo,
	}
}

// Execute lists the user's tags ordered by name.
func (uc *ListTagsUseCase) Execute(ctx context.Context, input ListTagsInput) (*ListTagsOutput, error) {
	tags, err := uc.tagRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return &ListTagsOutput{
		Tags: tags,
	}, nil
}
