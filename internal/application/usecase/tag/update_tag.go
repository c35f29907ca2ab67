package tag

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fin-mate/backend/internal/application/adapter"
	"github.com/fin-mate/backend/internal/domain/entity"
	domainerror "github.com/fin-mate/backend/internal/domain/error"
)

// UpdateTagInput represents the input for tag updates. Nil fields are left
// unchanged.
type UpdateTagInput struct {
	TagID  uuid.UUID
	UserID uuid.UUID
	Name   *string
	Color  *entity.TagColor
}

// UpdateTagOutput represents the output of a tag update.
type UpdateTagOutput struct {
	Tag *entity.Tag
}

// UpdateTagUseCase handles tag update logic.
type UpdateTagUseCase struct {
	tagRepo adapter.TagRepository
}

// NewUpdateTagUseCase creates a new UpdateTagUseCase instance.
func NewUpdateTagUseCase(tagRepo adapter.TagRepository) *UpdateTagUseCase {
	return &UpdateTagUseCase{
		tagRepo: tagRepo,
	}
}

// Execute performs the tag update.
func (uc *UpdateTagUseCase) Execute(ctx context.Context, input UpdateTagInput) (*UpdateTagOutput, error) {
	tag, err := uc.tagRepo.FindByID(ctx, input.TagID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	if tag == nil {
		return nil, domainerror.NewTagError(
			domainerror.ErrCodeTagNotFound,
			"tag not found",
			domainerror.ErrTagNotFound,
		)
	}
	if tag.UserID != input.UserID {
		return nil, domainerror.NewTagError(
			domainerror.ErrCodeNotAuthorizedTag,
			"not authorized to modify this tag",
			domainerror.ErrNotAuthorizedToModifyTag,
		)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name != "" && name != tag.Name {
			exists, err := uc.tagRepo.ExistsByNameAndUser(ctx, name, input.UserID)
			if err != nil {
				return nil, fmt.Errorf("failed to check tag name existence: %w", err)
			}
			if exists {
				return nil, domainerror.NewTagError(
					domainerror.ErrCodeTagNameExists,
					"a tag with this name already exists",
					domainerror.ErrTagNameExists,
				)
			}
			tag.Name = name
		}
	}

	if input.Color != nil {
		if !isValidTagColor(*input.Color) {
			return nil, domainerror.NewTagError(
				domainerror.ErrCodeInvalidTagColor,
				"tag color is not part of the palette",
				domainerror.ErrInvalidTagColor,
			)
		}
		tag.Color = *input.Color
	}

	if err := uc.tagRepo.Update(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	return &UpdateTagOutput{
		Tag: tag,
	}, nil
}
