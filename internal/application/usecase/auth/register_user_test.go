package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/fin-mate/backend/internal/application/adapter"
	"github.com/fin-mate/backend/internal/domain/entity"
	domainerror "github.com/fin-mate/backend/internal/domain/error"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

type fakeCategoryRepo struct {
	bulkCreated []*entity.Category
}

func (r *fakeCategoryRepo) Create(_ context.Context, _ *entity.Category) error { return nil }
func (r *fakeCategoryRepo) BulkCreate(_ context.Context, categories []*entity.Category) error {
	r.bulkCreated = append(r.bulkCreated, categories...)
	return nil
}
func (r *fakeCategoryRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.Category, error) {
	return nil, nil
}
func (r *fakeCategoryRepo) FindByUser(_ context.Context, _ uuid.UUID) ([]*entity.Category, error) {
	return nil, nil
}
func (r *fakeCategoryRepo) ExistsByNameAndUser(_ context.Context, _ string, _ uuid.UUID) (bool, error) {
	return false, nil
}
func (r *fakeCategoryRepo) Update(_ context.Context, _ *entity.Category) error { return nil }
func (r *fakeCategoryRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type fakePasswordService struct {
	weak bool
}

func (s *fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (s *fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (s *fakePasswordService) ValidatePasswordStrength(_ string) error {
	if s.weak {
		return domainerror.ErrWeakPassword
	}
	return nil
}

func TestRegisterUserSeedsDefaultCategories(t *testing.T) {
	userRepo := newFakeUserRepo()
	categoryRepo := &fakeCategoryRepo{}
	uc := NewRegisterUserUseCase(userRepo, categoryRepo, &fakePasswordService{})

	out, err := uc.Execute(context.Background(), RegisterUserInput{
		Email:    "Anna@Example.com",
		Name:     "Anna",
		Password: "correct-horse-battery",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.User.Email != "anna@example.com" {
		t.Errorf("expected normalized email, got %q", out.User.Email)
	}
	if len(categoryRepo.bulkCreated) != len(entity.DefaultCategoryNames) {
		t.Fatalf("expected %d seeded categories, got %d",
			len(entity.DefaultCategoryNames), len(categoryRepo.bulkCreated))
	}
	for i, c := range categoryRepo.bulkCreated {
		if c.Name != entity.DefaultCategoryNames[i] {
			t.Errorf("expected category %q at position %d, got %q",
				entity.DefaultCategoryNames[i], i, c.Name)
		}
		if c.UserID != out.User.ID {
			t.Error("seeded category must belong to the new user")
		}
	}
}

func TestRegisterUserRejectsDuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	userRepo.byEmail["anna@example.com"] = entity.NewUser("anna@example.com", "Anna", "x")

	uc := NewRegisterUserUseCase(userRepo, &fakeCategoryRepo{}, &fakePasswordService{})

	_, err := uc.Execute(context.Background(), RegisterUserInput{
		Email:    "anna@example.com",
		Name:     "Anna",
		Password: "correct-horse-battery",
	})
	if !errors.Is(err, domainerror.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestRegisterUserRejectsInvalidEmail(t *testing.T) {
	uc := NewRegisterUserUseCase(newFakeUserRepo(), &fakeCategoryRepo{}, &fakePasswordService{})

	_, err := uc.Execute(context.Background(), RegisterUserInput{
		Email:    "not-an-email",
		Name:     "Anna",
		Password: "correct-horse-battery",
	})
	if !errors.Is(err, domainerror.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestRegisterUserRejectsWeakPassword(t *testing.T) {
	uc := NewRegisterUserUseCase(newFakeUserRepo(), &fakeCategoryRepo{}, &fakePasswordService{weak: true})

	_, err := uc.Execute(context.Background(), RegisterUserInput{
		Email:    "anna@example.com",
		Name:     "Anna",
		Password: "123",
	})
	if !errors.Is(err, domainerror.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestLoginUserIssuesToken(t *testing.T) {
	userRepo := newFakeUserRepo()
	user := entity.NewUser("anna@example.com", "Anna", "hashed:secret-pass")
	userRepo.byEmail[user.Email] = user

	uc := NewLoginUserUseCase(userRepo, &fakePasswordService{}, &fakeTokenService{})

	out, err := uc.Execute(context.Background(), LoginUserInput{
		Email:    "anna@example.com",
		Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.AccessToken == "" {
		t.Error("expected an access token")
	}
}

func TestLoginUserSameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	userRepo := newFakeUserRepo()
	user := entity.NewUser("anna@example.com", "Anna", "hashed:secret-pass")
	userRepo.byEmail[user.Email] = user

	uc := NewLoginUserUseCase(userRepo, &fakePasswordService{}, &fakeTokenService{})

	_, unknownErr := uc.Execute(context.Background(), LoginUserInput{
		Email:    "nobody@example.com",
		Password: "secret-pass",
	})
	_, wrongErr := uc.Execute(context.Background(), LoginUserInput{
		Email:    "anna@example.com",
		Password: "wrong",
	})

	if !errors.Is(unknownErr, domainerror.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, domainerror.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongErr)
	}
}

type fakeTokenService struct{}

func (s *fakeTokenService) GenerateAccessToken(_ context.Context, userID uuid.UUID, _ string) (string, error) {
	return "token-" + userID.String(), nil
}

func (s *fakeTokenService) ValidateAccessToken(_ context.Context, _ string) (*adapter.TokenClaims, error) {
	return nil, nil
}
