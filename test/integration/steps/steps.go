package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
)

func registerSetupSteps(ctx *godog.ScenarioContext) {
	ctx.Given(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Given(`^I am authenticated as "([^"]*)"$`, iAmAuthenticatedAs)
	ctx.Given(`^I am not authenticated$`, iAmNotAuthenticated)
	ctx.Given(`^the owner is onboarded$`, theOwnerIsOnboarded)
	ctx.Given(`^the rate provider quotes "([A-Z]{3})" to "([A-Z]{3})" at "([^"]*)"$`, theRateProviderQuotes)
	ctx.Given(`^the rate provider is down$`, theRateProviderIsDown)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, theHeaderContainsTheKeyWith)
}

func registerRequestSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I upload the CSV:$`, iUploadTheCSV)
	ctx.Step(`^I remember the response field "([^"]*)" as "([^"]*)"$`, iRememberTheResponseFieldAs)
}

func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Then(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Then(`^the response header "([^"]*)" should be "([^"]*)"$`, theResponseHeaderShouldBe)
}

func registerStoreSteps(ctx *godog.ScenarioContext) {
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^the rate provider should have received (\d+) requests?$`, theRateProviderShouldHaveReceivedRequests)
}

func scenario(ctx context.Context) (*TestContext, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return nil, errors.New("test context not found")
	}
	return tc, nil
}

// Setup steps

func theAPIServerIsRunning(ctx context.Context) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if tc.server == nil {
		return errors.New("test server is not running")
	}
	return nil
}

func iAmAuthenticatedAs(ctx context.Context, ownerID string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	token, err := tc.tokenService.GenerateToken(ctx, ownerID, time.Hour)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}
	tc.token = token
	return nil
}

func iAmNotAuthenticated(ctx context.Context) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	tc.token = ""
	return nil
}

func theOwnerIsOnboarded(ctx context.Context) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if err := tc.executeRequest(http.MethodPost, "/api/v1/owner/onboard", "", nil); err != nil {
		return err
	}
	if tc.response.status != http.StatusOK {
		return fmt.Errorf("onboarding failed with status %d: %s", tc.response.status, tc.response.raw)
	}
	return nil
}

func theRateProviderQuotes(ctx context.Context, base, quote, rate string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	value, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return fmt.Errorf("invalid rate %q: %w", rate, err)
	}
	tc.rateProvider.SetResponse(http.MethodGet, "/historical",
		map[string]string{"source": base, "currencies": quote},
		http.StatusOK,
		map[string]any{
			"success": true,
			"source":  base,
			"quotes":  map[string]any{base + quote: value},
		},
	)
	return nil
}

func theRateProviderIsDown(ctx context.Context) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	tc.rateProvider.SetDefaultResponse(http.StatusBadGateway, map[string]any{"success": false})
	return nil
}

func theHeaderContainsTheKeyWith(ctx context.Context, key, value string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	tc.headers[key] = value
	return nil
}

// Request steps

func iSendARequestTo(ctx context.Context, method, path string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	return tc.executeRequest(method, tc.replacePlaceholders(path), "", nil)
}

func iSendARequestToWithBody(ctx context.Context, method, path string, body *godog.DocString) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(tc.replacePlaceholders(body.Content))
	}
	return tc.executeRequest(method, tc.replacePlaceholders(path), "application/json", payload)
}

func iUploadTheCSV(ctx context.Context, body *godog.DocString) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	return tc.executeRequest(http.MethodPost, "/api/v1/import", "text/csv", []byte(body.Content+"\n"))
}

func iRememberTheResponseFieldAs(ctx context.Context, field, name string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(tc.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, tc.response.raw)
	}
	tc.remembered[name] = fmt.Sprintf("%v", value)
	return nil
}

func (tc *TestContext) replacePlaceholders(content string) string {
	for name, value := range tc.remembered {
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	return content
}

func (tc *TestContext) executeRequest(method, path, contentType string, payload []byte) error {
	req, err := http.NewRequest(method, tc.server.URL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tc.token != "" {
		req.Header.Set("Authorization", "Bearer "+tc.token)
	}
	for key, value := range tc.headers {
		req.Header.Set(key, value)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	tc.response = &response{status: resp.StatusCode, headers: resp.Header, raw: raw}

	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		tc.response.body = string(raw)
	} else {
		tc.response.body = body
	}
	return nil
}

// Response steps

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return errors.New("no response received")
	}
	if tc.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.status, tc.response.raw)
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.response.raw, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if !strings.Contains(string(tc.response.raw), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, tc.response.raw)
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(tc.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, tc.response.raw)
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if getFieldValue(tc.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, tc.response.raw)
	}
	return nil
}

func theResponseHeaderShouldBe(ctx context.Context, header, expected string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if actual := tc.response.headers.Get(header); actual != expected {
		return fmt.Errorf("header '%s' expected '%s', got '%s'", header, expected, actual)
	}
	return nil
}

// getFieldValue walks a decoded JSON document along a dot separated path.
// Numeric segments index into arrays.
func getFieldValue(object any, dotSeparatedField string) any {
	field := object
	for _, segment := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}
		if i, err := strconv.Atoi(segment); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}
		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[segment]
	}
	return field
}

// Store steps

func theDbShouldContainObjectsInTheTable(ctx context.Context, quantity int, table string) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	return tc.countRows(quantity, table, nil)
}

func theDbShouldContainObjectsInWithTheValues(ctx context.Context, quantity int, table string, content *godog.DocString) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}
	return tc.countRows(quantity, table, criteria)
}

func (tc *TestContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := tc.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := tc.db.DbConn
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}
	if err := query.Find(entitySlicePtr.Interface()).Error; err != nil {
		return err
	}

	if count := entitySlicePtr.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func theRateProviderShouldHaveReceivedRequests(ctx context.Context, quantity int) error {
	tc, err := scenario(ctx)
	if err != nil {
		return err
	}
	if received := len(tc.rateProvider.GetRequests(http.MethodGet, "/historical")); received != quantity {
		return fmt.Errorf("expected %d rate provider requests, got %d", quantity, received)
	}
	return nil
}
