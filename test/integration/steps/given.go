package steps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/fin-mate/backend/internal/integration/persistence/model"
)

func (t *TestContext) theExchangeRateIs(code, rate string) error {
	if _, err := decimal.NewFromString(rate); err != nil {
		return fmt.Errorf("invalid rate %q: %w", rate, err)
	}
	t.rates.SetRate(code, rate)
	return nil
}

func (t *TestContext) theExchangeRateSourceIsUnavailable() error {
	t.rates.SetStatus(http.StatusServiceUnavailable)
	return nil
}

func (t *TestContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password)
}

// iAmLoggedInAs creates the user with the default password when absent
// and logs in through the real login endpoint.
func (t *TestContext) iAmLoggedInAs(email string) error {
	return t.iAmLoggedInAsWithPassword(email, defaultPassword)
}

func (t *TestContext) iAmLoggedInAsWithPassword(email, password string) error {
	var count int64
	if err := t.db.Conn.Model(&model.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up user %s: %w", email, err)
	}
	if count == 0 {
		if err := t.createUser(email, password); err != nil {
			return err
		}
	}
	return t.login(email, password)
}

func (t *TestContext) iAmNotAuthenticated() error {
	t.accessToken = ""
	return nil
}

func (t *TestContext) iHaveAnAccount(name, currency, accountType string) error {
	if t.userID == uuid.Nil {
		return fmt.Errorf("no user in scenario, log in before creating accounts")
	}

	now := time.Now().UTC()
	account := &model.AccountModel{
		ID:        uuid.New(),
		UserID:    t.userID,
		Name:      name,
		Currency:  currency,
		Type:      accountType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.db.Conn.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account %s: %w", name, err)
	}

	t.ids["accountId:"+name] = account.ID.String()
	return nil
}

func (t *TestContext) iHaveACategory(name string) error {
	if t.userID == uuid.Nil {
		return fmt.Errorf("no user in scenario, log in before creating categories")
	}

	now := time.Now().UTC()
	category := &model.CategoryModel{
		ID:        uuid.New(),
		UserID:    t.userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.db.Conn.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category %s: %w", name, err)
	}

	t.ids["categoryId:"+name] = category.ID.String()
	return nil
}

func (t *TestContext) iHaveATag(name, color string) error {
	if t.userID == uuid.Nil {
		return fmt.Errorf("no user in scenario, log in before creating tags")
	}

	now := time.Now().UTC()
	tag := &model.TagModel{
		ID:        uuid.New(),
		UserID:    t.userID,
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.db.Conn.Create(tag).Error; err != nil {
		return fmt.Errorf("failed to create tag %s: %w", name, err)
	}

	t.ids["tagId:"+name] = tag.ID.String()
	return nil
}

func (t *TestContext) theAccountHasATransaction(account, transactionType, amount, category, date string) error {
	accountID, ok := t.ids["accountId:"+account]
	if !ok {
		return fmt.Errorf("unknown account %q in scenario", account)
	}
	categoryID, ok := t.ids["categoryId:"+category]
	if !ok {
		return fmt.Errorf("unknown category %q in scenario", category)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	now := time.Now().UTC()
	transaction := &model.TransactionModel{
		ID:          uuid.New(),
		AccountID:   uuid.MustParse(accountID),
		CategoryID:  uuid.MustParse(categoryID),
		Amount:      value,
		Type:        transactionType,
		Date:        day,
		Description: fmt.Sprintf("%s in %s", strings.ToLower(transactionType), category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.db.Conn.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	t.ids["transactionId"] = transaction.ID.String()
	return nil
}

func (t *TestContext) theLastTransactionIsTagged(tag string) error {
	transactionID, ok := t.ids["transactionId"]
	if !ok {
		return fmt.Errorf("no transaction in scenario to tag")
	}
	tagID, ok := t.ids["tagId:"+tag]
	if !ok {
		return fmt.Errorf("unknown tag %q in scenario", tag)
	}

	link := &model.TransactionTagModel{
		TransactionID: uuid.MustParse(transactionID),
		TagID:         uuid.MustParse(tagID),
		AddedByID:     t.userID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := t.db.Conn.Create(link).Error; err != nil {
		return fmt.Errorf("failed to tag transaction: %w", err)
	}
	return nil
}

func (t *TestContext) aBudgetExists(limit, category, month string) error {
	categoryID, ok := t.ids["categoryId:"+category]
	if !ok {
		return fmt.Errorf("unknown category %q in scenario", category)
	}

	value, err := decimal.NewFromString(limit)
	if err != nil {
		return fmt.Errorf("invalid limit %q: %w", limit, err)
	}
	period, err := time.Parse("2006-01", month)
	if err != nil {
		return fmt.Errorf("invalid period %q: %w", month, err)
	}

	now := time.Now().UTC()
	budget := &model.BudgetModel{
		ID:         uuid.New(),
		UserID:     t.userID,
		CategoryID: uuid.MustParse(categoryID),
		LimitValue: value,
		Period:     period,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := t.db.Conn.Create(budget).Error; err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}

	t.ids["budgetId:"+category] = budget.ID.String()
	return nil
}

// createUser inserts a user row directly, bypassing registration so
// scenarios control the category set explicitly.
func (t *TestContext) createUser(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := t.db.Conn.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user %s: %w", email, err)
	}

	t.userID = user.ID
	t.ids["userId"] = user.ID.String()
	return nil
}

// login authenticates through the API and stores the issued token for
// subsequent requests. The scenario's recorded response is untouched.
func (t *TestContext) login(email, password string) error {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}

	resp, err := t.client.Post(
		t.server.URL+"/api/v1/auth/login",
		"application/json",
		bytes.NewReader(payload),
	)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || body.AccessToken == "" {
		return fmt.Errorf("login failed for %s with status %d", email, resp.StatusCode)
	}

	t.accessToken = body.AccessToken
	t.ids["userId"] = body.User.ID
	if id, err := uuid.Parse(body.User.ID); err == nil {
		t.userID = id
	}
	return nil
}
