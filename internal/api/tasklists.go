package api

import (
	"context"

	"momentum-cli/internal/model"
)

// Wire shapes for /api/tasklist/ and /api/task/. The backend capitalizes ID.
type wireTask struct {
	ID        string `json:"ID"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type wireTaskList struct {
	ID    string     `json:"ID"`
	Name  string     `json:"name"`
	Tasks []wireTask `json:"tasks"`
}

// TaskLists fetches every task list owned by the session user.
func (c *Client) TaskLists(ctx context.Context) ([]model.Collection, error) {
	var wire []wireTaskList
	if err := c.do(ctx, "GET", "/api/tasklist/", nil, &wire); err != nil {
		return nil, err
	}
	cols := make([]model.Collection, 0, len(wire))
	for _, wl := range wire {
		c := model.Collection{ID: wl.ID, Title: wl.Name}
		for _, wt := range wl.Tasks {
			c.Items = append(c.Items, model.Item{ID: wt.ID, Text: wt.Text, Completed: wt.Completed})
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// CreateTaskList creates a list and returns the server-assigned id.
func (c *Client) CreateTaskList(ctx context.Context, name string) (string, error) {
	var data idData
	err := c.do(ctx, "POST", "/api/tasklist/", map[string]string{"name": name}, &data)
	if err != nil {
		return "", err
	}
	return data.ID, nil
}

func (c *Client) DeleteTaskList(ctx context.Context, listID string) error {
	return c.do(ctx, "DELETE", "/api/tasklist/"+listID, nil, nil)
}

// CreateTask creates a task on the given list and returns its server id.
func (c *Client) CreateTask(ctx context.Context, listID, text string) (string, error) {
	var data idData
	err := c.do(ctx, "POST", "/api/task/"+listID, map[string]string{"text": text}, &data)
	if err != nil {
		return "", err
	}
	return data.ID, nil
}

func (c *Client) UpdateTask(ctx context.Context, itemID, text string) error {
	return c.do(ctx, "PATCH", "/api/task/"+itemID, map[string]string{"text": text}, nil)
}

func (c *Client) ToggleTask(ctx context.Context, itemID string, completed bool) error {
	return c.do(ctx, "PATCH", "/api/task/"+itemID+"/toggle", map[string]bool{"completed": completed}, nil)
}

func (c *Client) DeleteTask(ctx context.Context, itemID string) error {
	return c.do(ctx, "DELETE", "/api/task/"+itemID, nil, nil)
}
