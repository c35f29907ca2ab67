// Package tag contains tag-related use cases.
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

// CreateTagInput represents the input for tag creation.
type CreateTagInput struct {
	UserID uuid.UUID
	Name   string
	Color  entity.TagColor // Optional, defaults to DefaultTagColor
}

// CreateTagOutput represents the output of tag creation.
type CreateTagOutput struct {
	Tag *entity.Tag
}

// CreateTagUseCase handles tag creation logic.
type CreateTagUseCase struct {
	tagRepo adapter.TagRepository
}

// NewCreateTagUseCase creates a new CreateTagUseCase instance.
func NewCreateTagUseCase(tagRepo adapter.TagRepository) *CreateTagUseCase {
	return &CreateTagUseCase{
		tagRepo: tagRepo,
	}
}

// Execute performs the tag creation.
func (uc *CreateTagUseCase) Execute(ctx context.Context, input CreateTagInput) (*CreateTagOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewTagError(
			domainerror.ErrCodeTagNotFound,
			"tag name is required",
			nil,
		)
	}

	color := input.Color
	if color == "" {
		color = entity.DefaultTagColor
	}
	if !isValidTagColor(color) {
		return nil, domainerror.NewTagError(
			domainerror.ErrCodeInvalidTagColor,
			"tag color is not part of the palette",
			domainerror.ErrInvalidTagColor,
		)
	}

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

	tag := entity.NewTag(input.UserID, name, color)

	if err := uc.tagRepo.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return &CreateTagOutput{
		Tag: tag,
	}, nil
}

// isValidTagColor validates the tag color against the palette.
func isValidTagColor(color entity.TagColor) bool {
	switch color {
	case entity.TagColorPrimary, entity.TagColorSecondary, entity.TagColorSuccess,
		entity.TagColorDanger, entity.TagColorWarning, entity.TagColorInfo,
		entity.TagColorDark, entity.TagColorLight:
		return true
	}
	return false
}
