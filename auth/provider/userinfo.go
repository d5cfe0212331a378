package provider

import (
	"context"
	"encoding/json"

	goerrors "github.com/goliatone/go-errors"
)

type userInfo struct {
	Sub   string `json:"sub"`
	ID    string `json:"id"`
	Email string `json:"email"`
}

// account resolves the durable account identifier for accessToken: the email,
// or the subject when the profile carries no email.
func (c *Client) account(ctx context.Context, URL, accessToken string) (string, error) {
	data, err := c.get(ctx, URL, accessToken)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryExternal, "failed to fetch user info").WithTextCode(TextCodeProviderError)
	}
	info := &userInfo{}
	if err = json.Unmarshal(data, info); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryExternal, "invalid user info").WithTextCode(TextCodeProviderError)
	}
	switch {
	case info.Email != "":
		return info.Email, nil
	case info.Sub != "":
		return info.Sub, nil
	default:
		return info.ID, nil
	}
}
