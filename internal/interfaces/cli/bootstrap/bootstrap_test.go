package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeed = `
settings:
  rate_per_hour: 120
organizations:
  - id: org-1
    name: Acme
    plan: starter
    contact_email: ops@acme.test
users:
  - id: user-1
    name: Sarah Chen
    email: sarah@smileybox.test
    role: admin
    password: change-me-now
  - id: user-4
    name: Tom Wilson
    email: tom@acme.test
    role: client
    organization_id: org-1
`

func writeEnv(t *testing.T, seedContent string) string {
	t.Helper()
	return writeEnvWithTimezone(t, seedContent, "UTC")
}

func writeEnvWithTimezone(t *testing.T, seedContent, timezone string) string {
	t.Helper()
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte(seedContent), 0o600))

	configPath := filepath.Join(dir, "config.yaml")
	cfg := fmt.Sprintf(`
logger:
  level: error
billing:
  timezone: %s
auth:
  password:
    bcrypt_cost: 4
seed:
  enabled: true
  path: %s
`, timezone, seedPath)
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0o600))
	return configPath
}

func TestOpenStoreAs(t *testing.T) {
	ctx := context.Background()
	env, err := Init(writeEnv(t, testSeed))
	require.NoError(t, err)

	store, err := OpenStoreAs(ctx, env, "Tom@Acme.test")
	require.NoError(t, err)

	current, err := store.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-4", current.ID)

	rate, err := store.RatePerHour(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120.0, rate, "seed rate overrides the configured default")

	assert.Equal(t, 2, store.Tables().Counts().Users)
}

func TestOpenStoreAs_Errors(t *testing.T) {
	ctx := context.Background()

	env, err := Init(writeEnv(t, testSeed))
	require.NoError(t, err)

	_, err = OpenStoreAs(ctx, env, "")
	assert.Error(t, err)

	_, err = OpenStoreAs(ctx, env, "nobody@acme.test")
	assert.Error(t, err)

	broken, err := Init(writeEnv(t, testSeed+`
tickets:
  - id: TKT-001
    organization_id: org-missing
    title: Orphan
    description: No such organization
    status: open
    priority: low
    category: bug
    created_by: user-4
`))
	require.NoError(t, err)
	_, err = OpenStore(ctx, broken)
	assert.ErrorContains(t, err, "TKT-001")
}

func TestOpenStore_SeedDisabled(t *testing.T) {
	env, err := Init(writeEnv(t, testSeed))
	require.NoError(t, err)
	env.Config.Seed.Enabled = false

	store, err := OpenStore(context.Background(), env)
	require.NoError(t, err)
	assert.Zero(t, store.Tables().Counts().Users)

	rate, err := store.RatePerHour(context.Background())
	assert.Error(t, err, "nobody is signed in")
	assert.Zero(t, rate)
}

func TestInit_BusinessCalendar(t *testing.T) {
	env, err := Init(writeEnvWithTimezone(t, testSeed, "Asia/Tokyo"))
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", env.Calendar.Location().String())

	store, err := OpenStore(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, env.Calendar, store.Calendar())

	_, err = Init(writeEnvWithTimezone(t, testSeed, "Mars/Olympus"))
	assert.ErrorContains(t, err, "business timezone")
}
