package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"minute-market/internal/domain/user"
	"minute-market/internal/pkg/config"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase/commands"
)

// ClerkDirectory talks to the Clerk Backend API with the instance secret key.
type ClerkDirectory struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
}

func NewClerkDirectory(cfg config.IdentityConfig, httpClient *http.Client) *ClerkDirectory {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	return &ClerkDirectory{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.APIURL, "/"),
		secretKey:  cfg.SecretKey,
	}
}

type clerkEmail struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

type clerkUser struct {
	ID                    string         `json:"id"`
	Username              *string        `json:"username"`
	PrimaryEmailAddressID string         `json:"primary_email_address_id"`
	EmailAddresses        []clerkEmail   `json:"email_addresses"`
	PublicMetadata        map[string]any `json:"public_metadata"`
}

func (u *clerkUser) role() (user.Role, bool) {
	raw, _ := u.PublicMetadata["role"].(string)
	r, err := user.NewRole(raw)
	if err != nil {
		return "", false
	}
	return r, true
}

func (u *clerkUser) primaryEmail() string {
	for _, e := range u.EmailAddresses {
		if e.ID == u.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(u.EmailAddresses) > 0 {
		return u.EmailAddresses[0].EmailAddress
	}
	return ""
}

type clerkErrorBody struct {
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Meta    struct {
			ParamName string `json:"param_name"`
		} `json:"meta"`
	} `json:"errors"`
}

func (b clerkErrorBody) usernameTaken() bool {
	for _, e := range b.Errors {
		if e.Code == "form_identifier_exists" && e.Meta.ParamName == "username" {
			return true
		}
	}
	return false
}

func (b clerkErrorBody) message() string {
	msgs := make([]string, 0, len(b.Errors))
	for _, e := range b.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

func (d *ClerkDirectory) getUser(ctx context.Context, subject string) (*clerkUser, error) {
	var u clerkUser
	if err := d.do(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(subject), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureClientRole sets public_metadata.role=client for users without a role.
func (d *ClerkDirectory) EnsureClientRole(ctx context.Context, subject string) error {
	u, err := d.getUser(ctx, subject)
	if err != nil {
		return err
	}
	if _, ok := u.role(); ok {
		return nil
	}
	body := map[string]any{"public_metadata": map[string]any{"role": user.RoleClient.String()}}
	return d.do(ctx, http.MethodPatch, "/v1/users/"+url.PathEscape(subject)+"/metadata", body, nil)
}

func (d *ClerkDirectory) CreateUser(ctx context.Context, params commands.DirectoryUserParams) (*commands.DirectoryUser, error) {
	body := map[string]any{
		"email_address":   []string{params.Email},
		"username":        params.Username,
		"public_metadata": map[string]any{"role": user.RoleClient.String()},
	}
	if params.Password != "" {
		body["password"] = params.Password
	} else {
		body["skip_password_requirement"] = true
	}

	var u clerkUser
	if err := d.do(ctx, http.MethodPost, "/v1/users", body, &u); err != nil {
		return nil, err
	}
	out := &commands.DirectoryUser{Subject: u.ID, Username: params.Username, Email: u.primaryEmail()}
	if u.Username != nil {
		out.Username = *u.Username
	}
	if out.Email == "" {
		out.Email = params.Email
	}
	return out, nil
}

func (d *ClerkDirectory) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errs.Wrap(err, "clerk: encode request")
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, body)
	if err != nil {
		return errs.Wrap(err, "clerk: build request")
	}
	req.Header.Set("Authorization", "Bearer "+d.secretKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return errs.Mark(errs.Wrapf(err, "clerk: %s %s", method, path), errs.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var eb clerkErrorBody
		_ = json.Unmarshal(raw, &eb)
		if eb.usernameTaken() {
			return errs.Mark(errs.Newf("clerk: %s", eb.message()), user.ErrUsernameTaken)
		}
		if resp.StatusCode == http.StatusNotFound {
			return errs.Mark(errs.Newf("clerk: %s %s: not found", method, path), errs.ErrNotFound)
		}
		return errs.Mark(
			errs.Newf("clerk: %s %s failed: status=%d body=%s", method, path, resp.StatusCode, strings.TrimSpace(string(raw))),
			errs.ErrUpstream,
		)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Mark(errs.Wrap(err, "clerk: decode response"), errs.ErrUpstream)
	}
	return nil
}

var _ commands.IdentityDirectory = (*ClerkDirectory)(nil)
