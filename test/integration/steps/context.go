// Package steps wires godog scenarios to a fully assembled application
// instance backed by in-process test doubles: an in-memory SQLite
// database, miniredis and a fake exchange-rate endpoint.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/fin-mate/backend/config"
	"github.com/fin-mate/backend/internal/infra/dependency"
	"github.com/fin-mate/backend/test/integration/mock"
)

const testJWTSecret = "integration-test-jwt-secret"

// defaultPassword is used for users created by login shortcuts.
const defaultPassword = "Password123!"

// TestContext carries the state shared by the steps of one scenario.
type TestContext struct {
	db     *mock.Db
	redis  *redis.Client
	rates  *mock.RateServer
	server *httptest.Server
	client *http.Client

	accessToken string
	userID      uuid.UUID
	ids         map[string]string

	response     *http.Response
	responseBody []byte
}

var testCtx *TestContext

// InitializeTestSuite boots the application once for the whole suite.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		// The login rate limiter is disabled in the test environment.
		_ = os.Setenv("ENV", "test")
		testCtx = newTestContext()
	})

	ctx.AfterSuite(func() {
		if testCtx != nil {
			testCtx.server.Close()
			testCtx.rates.Close()
		}
	})
}

// InitializeScenario registers all step definitions and resets shared
// state before each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, testCtx.reset()
	})

	t := func() *TestContext { return testCtx }

	// Background and Given steps
	ctx.Step(`^the exchange rate for "([^"]*)" is "([^"]*)"$`, func(code, rate string) error {
		return t().theExchangeRateIs(code, rate)
	})
	ctx.Step(`^the exchange rate source is unavailable$`, func() error {
		return t().theExchangeRateSourceIsUnavailable()
	})
	ctx.Step(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, func(email, password string) error {
		return t().aUserExistsWithEmailAndPassword(email, password)
	})
	ctx.Step(`^I am logged in as "([^"]*)"$`, func(email string) error {
		return t().iAmLoggedInAs(email)
	})
	ctx.Step(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, func(email, password string) error {
		return t().iAmLoggedInAsWithPassword(email, password)
	})
	ctx.Step(`^I am not authenticated$`, func() error {
		return t().iAmNotAuthenticated()
	})
	ctx.Step(`^I have an account "([^"]*)" in "([^"]*)" of type "([^"]*)"$`, func(name, currency, accountType string) error {
		return t().iHaveAnAccount(name, currency, accountType)
	})
	ctx.Step(`^I have a category "([^"]*)"$`, func(name string) error {
		return t().iHaveACategory(name)
	})
	ctx.Step(`^I have a tag "([^"]*)" colored "([^"]*)"$`, func(name, color string) error {
		return t().iHaveATag(name, color)
	})
	ctx.Step(`^the account "([^"]*)" has an? (INCOME|EXPENSE) of "([^"]*)" in "([^"]*)" on "([^"]*)"$`,
		func(account, transactionType, amount, category, date string) error {
			return t().theAccountHasATransaction(account, transactionType, amount, category, date)
		})
	ctx.Step(`^the last transaction is tagged "([^"]*)"$`, func(tag string) error {
		return t().theLastTransactionIsTagged(tag)
	})
	ctx.Step(`^a budget of "([^"]*)" for "([^"]*)" in "([^"]*)"$`, func(limit, category, month string) error {
		return t().aBudgetExists(limit, category, month)
	})

	// Request steps
	ctx.Step(`^I send a (GET|POST|PATCH|DELETE) request to "([^"]*)"$`, func(method, path string) error {
		return t().iSendARequestTo(method, path)
	})
	ctx.Step(`^I send a (GET|POST|PATCH|DELETE) request to "([^"]*)" with body:$`,
		func(method, path string, body *godog.DocString) error {
			return t().iSendARequestToWithBody(method, path, body)
		})

	// Assertion steps
	ctx.Step(`^the response status should be (\d+)$`, func(status int) error {
		return t().theResponseStatusShouldBe(status)
	})
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, func(field, value string) error {
		return t().theResponseFieldShouldBe(field, value)
	})
	ctx.Step(`^the response field "([^"]*)" should exist$`, func(field string) error {
		return t().theResponseFieldShouldExist(field)
	})
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, func(field string, count int) error {
		return t().theResponseFieldShouldHaveItems(field, count)
	})
	ctx.Step(`^the database should have (\d+) rows? in "([^"]*)"$`, func(count int, table string) error {
		return t().theDatabaseShouldHaveRows(count, table)
	})
	ctx.Step(`^the rate source should have been fetched (\d+) times?$`, func(count int) error {
		return t().theRateSourceShouldHaveBeenFetched(count)
	})
}

// newTestContext assembles the application against the test doubles and
// starts an HTTP server for it.
func newTestContext() *TestContext {
	t := &TestContext{
		db:     mock.NewDb(),
		redis:  mock.NewRedis(),
		rates:  mock.NewRateServer(),
		client: &http.Client{Timeout: 10 * time.Second},
		ids:    map[string]string{},
	}

	cfg := testConfig(t.rates.URL())
	injector := dependency.NewInjector(
		cfg,
		t.db.Conn,
		t.redis,
		func() bool { return true },
		func() bool { return true },
	)
	t.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))

	return t
}

// testConfig builds the configuration the suite runs with. External
// endpoints point at the in-process doubles and the static rate table
// is empty so every resolved rate is attributable to the fake source.
func testConfig(rateSourceURL string) *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.FX.BaseCurrency = "UAH"
	cfg.FX.SourceURL = rateSourceURL
	cfg.FX.FetchTimeout = 2 * time.Second
	cfg.FX.CacheTTL = time.Minute
	cfg.FX.StaticRates = map[string]decimal.Decimal{}
	cfg.Cache.BalanceTTL = time.Minute
	return cfg
}

// reset clears all shared state so scenarios are independent.
func (t *TestContext) reset() error {
	if err := t.db.Reset(); err != nil {
		return err
	}
	if err := mock.ClearRedis(t.redis); err != nil {
		return err
	}
	t.rates.Reset()

	t.accessToken = ""
	t.userID = uuid.Nil
	t.ids = map[string]string{}
	t.response = nil
	t.responseBody = nil
	return nil
}
