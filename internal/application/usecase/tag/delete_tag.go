package tag

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fin-mate/backend/internal/application/adapter"
	domainerror "github.com/fin-mate/backend/internal/domain/error"
)

// DeleteTagInput represents the input for tag deletion.
type DeleteTagInput struct {
	TagID  uuid.UUID
	UserID uuid.UUID
}

// DeleteTagUseCase handles tag deletion logic.
type DeleteTagUseCase struct {
	tagRepo adapter.TagRepository
}

// NewDeleteTagUseCase creates a new DeleteTagUseCase instance.
func NewDeleteTagUseCase(tagRepo adapter.TagRepository) *DeleteTagUseCase {
	return &DeleteTagUseCase{
		tagRepo: tagRepo,
	}
}

// Execute performs the tag deletion.
func (uc *DeleteTagUseCase) Execute(ctx context.Context, input DeleteTagInput) error {
	tag, err := uc.tagRepo.FindByID(ctx, input.TagID)
	if err != nil {
		return fmt.Errorf("failed to find tag: %w", err)
	}
	if tag == nil {
		return domainerror.NewTagError(
			domainerror.ErrCodeTagNotFound,
			"tag not found",
			domainerror.ErrTagNotFound,
		)
	}
	if tag.UserID != input.UserID {
		return domainerror.NewTagError(
			domainerror.ErrCodeNotAuthorizedTag,
			"not authorized to modify this tag",
			domainerror.ErrNotAuthorizedToModifyTag,
		)
	}

	if err := uc.tagRepo.Delete(ctx, input.TagID); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	return nil
}
