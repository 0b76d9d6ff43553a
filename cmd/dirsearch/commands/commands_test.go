package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/dirsearch/internal/adapters/oidc"
)

const testToken = "dev-token"

func stubDirectory(t *testing.T) *httptest.Server {
	t.Helper()
	write := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/v1.0/me":
			write(w, map[string]any{
				"id": "me", "givenName": "Grace", "displayName": "Grace Hopper",
				"userPrincipalName": "grace@example.com", "businessPhones": []any{"+1 555 0100"},
			})
		case "/v1.0/users":
			write(w, map[string]any{"value": []any{
				map[string]any{"id": "u1", "displayName": "Ada Lovelace", "userPrincipalName": "ada@example.com"},
			}})
		case "/v1.0/deviceManagement/managedDevices":
			if strings.HasPrefix(r.URL.Query().Get("$filter"), "serialNumber") {
				write(w, map[string]any{"value": []any{
					map[string]any{"id": "d1", "deviceName": "LAPTOP-01", "model": "XPS", "serialNumber": "ABC123"},
				}})
				return
			}
			write(w, map[string]any{"value": []any{}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupEnv(t *testing.T, baseURL string) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("AUTH_MODE", "mock")
	t.Setenv("DEV_AUTH_TOKEN", testToken)
	t.Setenv("DIRECTORY_BASE_URL", baseURL+"/v1.0")
	t.Setenv("CACHE_LOOKUP_ENABLED", "false")
	t.Setenv("OBSERVABILITY_METRICS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DEV", "false")
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	Version = "1.2.3"
	t.Cleanup(func() { Version = "dev" })

	out, _, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)

	out, _, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dirsearch 1.2.3")
	assert.Contains(t, out, "Go version:")
}

func TestSearch_Table(t *testing.T) {
	srv := stubDirectory(t)
	setupEnv(t, srv.URL)

	out, errOut, err := run(t, "search", "ABC123")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "LAPTOP-01")
	assert.Contains(t, out, "Serial: ABC123")
	assert.Contains(t, out, "Page 1 of 1  |  Total results: 2")
	assert.Contains(t, errOut, "Grace is connected.")
}

func TestSearch_JSON(t *testing.T) {
	srv := stubDirectory(t)
	setupEnv(t, srv.URL)

	out, _, err := run(t, "search", "-o", "json", "ABC123")
	require.NoError(t, err)

	var got struct {
		Page    int `json:"page"`
		Total   int `json:"total"`
		Records []struct {
			Index int    `json:"index"`
			Kind  string `json:"kind"`
			Label string `json:"label"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 2, got.Total)
	require.Len(t, got.Records, 2)
	assert.Equal(t, "principal", got.Records[0].Kind)
	assert.Equal(t, "Device: LAPTOP-01 (Serial: ABC123)", got.Records[1].Label)
	assert.Equal(t, 2, got.Records[1].Index)
}

func TestSearch_Detail(t *testing.T) {
	srv := stubDirectory(t)
	setupEnv(t, srv.URL)

	out, _, err := run(t, "search", "ABC123", "--detail", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Device Name: LAPTOP-01")
	assert.Contains(t, out, "Serial Number: ABC123")
	assert.Contains(t, out, "Associated User:\nAssociated user not found.")

	_, _, err = run(t, "search", "ABC123", "--detail", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no result 9")
}

func TestSearch_InvalidQuery(t *testing.T) {
	srv := stubDirectory(t)
	setupEnv(t, srv.URL)

	_, errOut, err := run(t, "search", "  ")
	require.Error(t, err)
	assert.Contains(t, errOut, "Please enter a valid search.")
}

func TestSearch_BadOutputFormat(t *testing.T) {
	_, _, err := run(t, "search", "-o", "xml", "grace")
	require.Error(t, err)
}

func TestWhoami(t *testing.T) {
	srv := stubDirectory(t)
	setupEnv(t, srv.URL)

	out, _, err := run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Grace Hopper")
	assert.Contains(t, out, "grace@example.com")
	assert.Contains(t, out, "+1 555 0100")

	out, _, err = run(t, "whoami", "--brief", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"identity":"Grace","state":"connected"}`, out)
}

func TestDevicePrompt(t *testing.T) {
	var buf bytes.Buffer
	prompt := devicePrompt(&buf)

	require.NoError(t, prompt(context.Background(), oidc.DeviceCode{
		UserCode:        "ABCD-EFGH",
		VerificationURI: "https://microsoft.com/devicelogin",
	}))
	assert.Equal(t, "To sign in, open https://microsoft.com/devicelogin and enter the code ABCD-EFGH\n", buf.String())

	buf.Reset()
	require.NoError(t, prompt(context.Background(), oidc.DeviceCode{
		UserCode:                "ABCD-EFGH",
		VerificationURI:         "https://microsoft.com/devicelogin",
		VerificationURIComplete: "https://microsoft.com/devicelogin?code=ABCD-EFGH",
	}))
	assert.Contains(t, buf.String(), "devicelogin?code=ABCD-EFGH")
}

func TestColorEnabled(t *testing.T) {
	t.Cleanup(func() { Flags = GlobalFlags{} })

	Flags = GlobalFlags{NoColor: true}
	assert.False(t, colorEnabled())

	Flags = GlobalFlags{}
	t.Setenv("NO_COLOR", "1")
	assert.False(t, colorEnabled())
}
