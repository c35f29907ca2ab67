package steps

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/cucumber/godog"
)

var placeholderPattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

func (t *TestContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, path, nil)
}

func (t *TestContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	payload := t.replacePlaceholders(body.Content)
	return t.executeRequest(method, path, []byte(payload))
}

func (t *TestContext) executeRequest(method, path string, payload []byte) error {
	url := t.server.URL + t.replacePlaceholders(path)

	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build %s %s: %w", method, path, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	t.response = resp
	t.responseBody = body
	return nil
}

// replacePlaceholders substitutes {{name}} tokens with identifiers
// recorded by earlier steps, such as {{accountId:Wallet}} or
// {{accessToken}}. Unknown tokens are left as-is so assertions fail
// visibly.
func (t *TestContext) replacePlaceholders(content string) string {
	return placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		key := strings.Trim(match, "{}")
		if key == "accessToken" {
			return t.accessToken
		}
		if value, ok := t.ids[key]; ok {
			return value
		}
		return match
	})
}
