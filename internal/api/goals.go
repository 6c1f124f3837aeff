package api

import (
	"context"

	"momentum-cli/internal/model"
)

// Goals fetches every goal with its nested subgoals and habits.
func (c *Client) Goals(ctx context.Context) ([]model.Goal, error) {
	var goals []model.Goal
	if err := c.do(ctx, "GET", "/api/goal/", nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// CreateGoal creates a goal and returns the server-assigned id.
func (c *Client) CreateGoal(ctx context.Context, g model.Goal) (string, error) {
	var data idData
	if err := c.do(ctx, "POST", "/api/goal/", g, &data); err != nil {
		return "", err
	}
	return data.ID, nil
}

// UpdateGoal replaces the goal's fields (name, deadline, description, SMART
// fields, subgoals, habits). Completion flags travel via the toggle routes.
func (c *Client) UpdateGoal(ctx context.Context, g model.Goal) error {
	return c.do(ctx, "PUT", "/api/goal/"+g.ID, g, nil)
}

func (c *Client) DeleteGoal(ctx context.Context, goalID string) error {
	return c.do(ctx, "DELETE", "/api/goal/"+goalID, nil, nil)
}

func (c *Client) ToggleGoal(ctx context.Context, goalID string, completed bool) error {
	return c.do(ctx, "PATCH", "/api/goal/"+goalID+"/toggle", map[string]bool{"completed": completed}, nil)
}

func (c *Client) ToggleSubgoal(ctx context.Context, goalID, subgoalID string, completed bool) error {
	return c.do(ctx, "PATCH", "/api/goal/"+goalID+"/"+subgoalID+"/toggle", map[string]bool{"completed": completed}, nil)
}
