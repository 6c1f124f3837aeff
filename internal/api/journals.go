package api

import (
	"context"

	"momentum-cli/internal/model"
)

// Journals fetches all journal entries, active and trashed.
func (c *Client) Journals(ctx context.Context) ([]model.Journal, error) {
	var js []model.Journal
	if err := c.do(ctx, "GET", "/api/journal/", nil, &js); err != nil {
		return nil, err
	}
	return js, nil
}

// CreateJournal creates an entry and returns the server-assigned id.
func (c *Client) CreateJournal(ctx context.Context, title, content string) (string, error) {
	var data idData
	body := map[string]string{"title": title, "content": content}
	if err := c.do(ctx, "POST", "/api/journal/", body, &data); err != nil {
		return "", err
	}
	return data.ID, nil
}

func (c *Client) UpdateJournal(ctx context.Context, journalID, title, content string) error {
	body := map[string]string{"title": title, "content": content}
	return c.do(ctx, "PATCH", "/api/journal/"+journalID, body, nil)
}

// TrashJournal moves an entry to the trash bin; RestoreJournal moves it back.
func (c *Client) TrashJournal(ctx context.Context, journalID string) error {
	return c.do(ctx, "PATCH", "/api/journal/"+journalID+"/trash", nil, nil)
}

func (c *Client) RestoreJournal(ctx context.Context, journalID string) error {
	return c.do(ctx, "PATCH", "/api/journal/"+journalID+"/restore", nil, nil)
}

// DeleteJournal permanently deletes an entry (the trash bin's purge).
func (c *Client) DeleteJournal(ctx context.Context, journalID string) error {
	return c.do(ctx, "DELETE", "/api/journal/"+journalID, nil, nil)
}
