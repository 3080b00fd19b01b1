package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AppAuth holds GitHub App credentials used to mint installation tokens when
// no plain token is available in the environment.
type AppAuth struct {
	AppID      string
	PrivateKey string

	// BaseURL overrides the API host, primarily for tests.
	// Defaults to https://api.github.com.
	BaseURL string
}

func (a *AppAuth) apiBase() string {
	if a.BaseURL != "" {
		return a.BaseURL
	}
	return "https://api.github.com"
}

// GenerateJWT creates the short-lived App JWT used to call the installation
// endpoints.
func (a *AppAuth) GenerateJWT() (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(a.PrivateKey))
	if err != nil {
		return "", fmt.Errorf("parse private key: %w", err)
	}

	appID, err := strconv.ParseInt(a.AppID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid app ID %q: %w", a.AppID, err)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		Issuer:    strconv.FormatInt(appID, 10),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign JWT: %w", err)
	}
	return signed, nil
}

// InstallationToken exchanges App credentials for an installation access
// token scoped to the given repository.
func (a *AppAuth) InstallationToken(ctx context.Context, owner, name string) (string, error) {
	appJWT, err := a.GenerateJWT()
	if err != nil {
		return "", err
	}

	installationID, err := a.installationID(ctx, appJWT, owner, name)
	if err != nil {
		return "", err
	}

	return a.accessToken(ctx, appJWT, installationID)
}

func (a *AppAuth) installationID(ctx context.Context, appJWT, owner, name string) (int64, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/installation", a.apiBase(), owner, name)

	var result struct {
		ID int64 `json:"id"`
	}
	if err := a.doJSON(ctx, http.MethodGet, url, appJWT, http.StatusOK, &result); err != nil {
		return 0, fmt.Errorf("get installation for %s/%s: %w", owner, name, err)
	}
	return result.ID, nil
}

func (a *AppAuth) accessToken(ctx context.Context, appJWT string, installationID int64) (string, error) {
	url := fmt.Sprintf("%s/app/installations/%d/access_tokens", a.apiBase(), installationID)

	var result struct {
		Token string `json:"token"`
	}
	if err := a.doJSON(ctx, http.MethodPost, url, appJWT, http.StatusCreated, &result); err != nil {
		return "", fmt.Errorf("create installation token: %w", err)
	}
	return result.Token, nil
}

func (a *AppAuth) doJSON(ctx context.Context, method, url, appJWT string, wantStatus int, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+appJWT)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("call GitHub API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GitHub API error: %d - %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
