// Package dependency provides dependency injection for the application.
package dependency

import (
	redisclient "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fin-mate/backend/config"
	"github.com/fin-mate/backend/internal/application/usecase/account"
	"github.com/fin-mate/backend/internal/application/usecase/auth"
	"github.com/fin-mate/backend/internal/application/usecase/balance"
	"github.com/fin-mate/backend/internal/application/usecase/budget"
	"github.com/fin-mate/backend/internal/application/usecase/category"
	"github.com/fin-mate/backend/internal/application/usecase/dashboard"
	"github.com/fin-mate/backend/internal/application/usecase/fx"
	"github.com/fin-mate/backend/internal/application/usecase/tag"
	"github.com/fin-mate/backend/internal/application/usecase/transaction"
	"github.com/fin-mate/backend/internal/domain/entity"
	"github.com/fin-mate/backend/internal/infra/server/router"
	"github.com/fin-mate/backend/internal/integration/adapters"
	"github.com/fin-mate/backend/internal/integration/entrypoint/controller"
	"github.com/fin-mate/backend/internal/integration/entrypoint/middleware"
	"github.com/fin-mate/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies
// wired. The health checkers are passed in so the caller decides what
// counts as alive.
func NewInjector(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redisclient.Client,
	dbHealthChecker func() bool,
	cacheHealthChecker func() bool,
) *Injector {
	baseCurrency := entity.Currency(cfg.FX.BaseCurrency)

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	accountRepo := persistence.NewAccountRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	tagRepo := persistence.NewTagRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	dashboardRepo := persistence.NewDashboardRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	cache := adapters.NewRedisCache(redisClient)
	rateSource := adapters.NewNBUClient(cfg.FX.SourceURL, cfg.FX.FetchTimeout)

	// Create the rate provider and the balance cache
	rateService := fx.NewService(cache, rateSource, fx.Config{
		BaseCurrency: cfg.FX.BaseCurrency,
		CacheTTL:     cfg.FX.CacheTTL,
		StaticRates:  cfg.FX.StaticRates,
	})
	balanceService := balance.NewService(accountRepo, cache, cfg.Cache.BalanceTTL)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, categoryRepo, passwordService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	// Create account use cases
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo, balanceService)
	createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
	updateAccountUseCase := account.NewUpdateAccountUseCase(accountRepo)
	deleteAccountUseCase := account.NewDeleteAccountUseCase(accountRepo, balanceService)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Create tag use cases
	listTagsUseCase := tag.NewListTagsUseCase(tagRepo)
	createTagUseCase := tag.NewCreateTagUseCase(tagRepo)
	updateTagUseCase := tag.NewUpdateTagUseCase(tagRepo)
	deleteTagUseCase := tag.NewDeleteTagUseCase(tagRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(
		transactionRepo, accountRepo, categoryRepo, tagRepo, balanceService)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(
		transactionRepo, accountRepo, categoryRepo, tagRepo, balanceService)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(
		transactionRepo, accountRepo, balanceService)

	// Create budget use cases
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo, dashboardRepo, rateService, baseCurrency)
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)
	copyMonthUseCase := budget.NewCopyMonthUseCase(budgetRepo)

	// Create dashboard use case
	monthSummaryUseCase := dashboard.NewMonthSummaryUseCase(dashboardRepo, rateService, baseCurrency)

	// Create controllers
	healthController := controller.NewHealthController(dbHealthChecker, cacheHealthChecker)
	authController := controller.NewAuthController(registerUseCase, loginUseCase)
	accountController := controller.NewAccountController(
		listAccountsUseCase, createAccountUseCase, updateAccountUseCase, deleteAccountUseCase)
	categoryController := controller.NewCategoryController(
		listCategoriesUseCase, createCategoryUseCase, updateCategoryUseCase, deleteCategoryUseCase)
	tagController := controller.NewTagController(
		listTagsUseCase, createTagUseCase, updateTagUseCase, deleteTagUseCase)
	transactionController := controller.NewTransactionController(
		listTransactionsUseCase, createTransactionUseCase, updateTransactionUseCase, deleteTransactionUseCase)
	budgetController := controller.NewBudgetController(
		listBudgetsUseCase, createBudgetUseCase, updateBudgetUseCase, deleteBudgetUseCase, copyMonthUseCase)
	dashboardController := controller.NewDashboardController(monthSummaryUseCase)

	// Create middleware
	loginRateLimiter := middleware.NewRateLimiter()
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		accountController,
		categoryController,
		tagController,
		transactionController,
		budgetController,
		dashboardController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}
