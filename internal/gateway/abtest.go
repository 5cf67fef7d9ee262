// ABOUTME: A/B testing endpoints for retrieval configuration experiments
// ABOUTME: Wraps the /ab-testing API surface

package gateway

import (
	"context"
	"fmt"
	"strconv"
)

// ListABTests returns all A/B tests.
func (c *Client) ListABTests(ctx context.Context) ([]ABTest, error) {
	var tests []ABTest
	if err := c.get(ctx, "/ab-testing/tests", nil, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

// GetABTest fetches one test by ID.
func (c *Client) GetABTest(ctx context.Context, id int) (*ABTest, error) {
	var test ABTest
	if err := c.get(ctx, "/ab-testing/tests/"+strconv.Itoa(id), nil, &test); err != nil {
		return nil, err
	}
	return &test, nil
}

// CreateABTest creates a test in draft state.
func (c *Client) CreateABTest(ctx context.Context, req ABTestCreate) (*ABTest, error) {
	var test ABTest
	if err := c.post(ctx, "/ab-testing/tests", req, &test); err != nil {
		return nil, err
	}
	return &test, nil
}

// DeleteABTest removes a test and its recorded interactions.
func (c *Client) DeleteABTest(ctx context.Context, id int) error {
	return c.del(ctx, "/ab-testing/tests/"+strconv.Itoa(id))
}

// StartABTest transitions a test to running.
func (c *Client) StartABTest(ctx context.Context, id int) (*ABTest, error) {
	return c.transitionABTest(ctx, id, "start")
}

// PauseABTest transitions a running test to paused.
func (c *Client) PauseABTest(ctx context.Context, id int) (*ABTest, error) {
	return c.transitionABTest(ctx, id, "pause")
}

// CompleteABTest transitions a test to completed.
func (c *Client) CompleteABTest(ctx context.Context, id int) (*ABTest, error) {
	return c.transitionABTest(ctx, id, "complete")
}

func (c *Client) transitionABTest(ctx context.Context, id int, action string) (*ABTest, error) {
	var test ABTest
	path := fmt.Sprintf("/ab-testing/tests/%d/%s", id, action)
	if err := c.post(ctx, path, nil, &test); err != nil {
		return nil, err
	}
	return &test, nil
}

// ABTestSummary returns the aggregated outcomes of a test.
func (c *Client) ABTestSummary(ctx context.Context, id int) (*ABTestSummary, error) {
	var summary ABTestSummary
	path := fmt.Sprintf("/ab-testing/tests/%d/summary", id)
	if err := c.get(ctx, path, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// RunTestQuery routes one query through a running test's variants.
func (c *Client) RunTestQuery(ctx context.Context, testID int, req TestQueryRequest) (*TestQueryResponse, error) {
	var result TestQueryResponse
	path := fmt.Sprintf("/ab-testing/tests/%d/query", testID)
	if err := c.post(ctx, path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitFeedback records user feedback on a test interaction.
func (c *Client) SubmitFeedback(ctx context.Context, interactionID string, req FeedbackRequest) error {
	path := "/ab-testing/interactions/" + interactionID + "/feedback"
	return c.post(ctx, path, req, nil)
}
