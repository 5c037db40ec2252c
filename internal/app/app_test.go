package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/specialistvlad/baton/internal/blueprint"
	"github.com/specialistvlad/baton/internal/inventory"
	"github.com/specialistvlad/baton/internal/model"
	"github.com/specialistvlad/baton/internal/registry"
	"github.com/specialistvlad/baton/internal/testutil"
	"github.com/specialistvlad/baton/modules/print"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moduleFunc func(r *registry.Registry)

func (f moduleFunc) Register(r *registry.Registry) { f(r) }

// setupApp creates a new app instance with debug logging captured in a buffer.
func setupApp(t *testing.T, cfg Config, modules ...registry.Module) (*App, *testutil.SafeBuffer) {
	t.Helper()

	cfg.LogLevel = "debug"
	config, err := NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &testutil.SafeBuffer{}
	testApp := NewApp(logBuffer, config, modules...)

	t.Cleanup(func() {
		if os.Getenv("BATON_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})
	return testApp, logBuffer
}

func greeterModule() registry.Module {
	return moduleFunc(func(r *registry.Registry) {
		r.RegisterRole(blueprint.NewRole("greeter", model.Component("print/hello", nil)))
	})
}

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{})
	require.Error(t, err)

	cfg, err := NewConfig(Config{InventoryPath: "hosts.hcl"})
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Parallel)

	_, err = NewConfig(Config{InventoryPath: "hosts.hcl", Parallel: -1})
	require.Error(t, err)
	_, err = NewConfig(Config{InventoryPath: "hosts.hcl", MetricsPort: 70000})
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	assert.Equal(t, slog.LevelInfo, parseLevel("chatty"))
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
}

func TestRunConvergesInventory(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"hosts.hcl": `
host "web1" {
  roles = ["greeter"]
}
`})
	var out bytes.Buffer
	a, logs := setupApp(t, Config{InventoryPath: filepath.Join(dir, "hosts.hcl")},
		&print.Module{Out: &out}, greeterModule())

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, "[web1]      message = \"hello\"\n", out.String())
	assert.Contains(t, logs.String(), "Convergence finished.")
	assert.Contains(t, logs.String(), "succeeded=1")
}

func TestRunIsolatesSystemFailures(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"hosts.yaml": `
hosts:
  - name: broken
    roles: [db]
  - name: web1
    roles: [greeter]
`})
	var out bytes.Buffer
	a, _ := setupApp(t, Config{InventoryPath: dir, Parallel: 2},
		&print.Module{Out: &out}, greeterModule())

	err := a.Run(context.Background())
	require.ErrorIs(t, err, blueprint.ErrMissingRole)
	assert.Contains(t, err.Error(), `system "broken"`)
	assert.Contains(t, out.String(), "[web1]", "healthy systems still converge")
}

func TestRunSelectsHosts(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"hosts.hcl": `
host "web1" { roles = ["greeter"] }
host "web2" { roles = ["greeter"] }
`})
	var out bytes.Buffer
	a, _ := setupApp(t, Config{InventoryPath: dir, Hosts: []string{"web2"}},
		&print.Module{Out: &out}, greeterModule())

	require.NoError(t, a.Run(context.Background()))
	assert.NotContains(t, out.String(), "[web1]")
	assert.Contains(t, out.String(), "[web2]")

	a.config.Hosts = []string{"web9"}
	require.ErrorIs(t, a.Run(context.Background()), inventory.ErrUnknownHost)
}

func TestRunParallelSystemsOverlap(t *testing.T) {
	sleeper := testutil.NewSleeper(100 * time.Millisecond)
	dir := testutil.WriteFiles(t, map[string]string{"hosts.hcl": `
host "a" { roles = ["sleep"] }
host "b" { roles = ["sleep"] }
`})
	a, _ := setupApp(t, Config{InventoryPath: dir, Parallel: 2}, moduleFunc(func(r *registry.Registry) {
		r.RegisterRole(blueprint.NewRole("sleep", model.Proc(sleeper)))
	}))

	require.NoError(t, a.Run(context.Background()))
	ra, rb := sleeper.Record("a"), sleeper.Record("b")
	require.NotNil(t, ra)
	require.NotNil(t, rb)
	assert.True(t, ra.Overlaps(rb), "systems should converge concurrently")
}

func TestRunClosesConnections(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"hosts.hcl": `host "web1" { roles = ["greeter"] }`})
	a, _ := setupApp(t, Config{InventoryPath: dir}, &print.Module{Out: &bytes.Buffer{}}, greeterModule())

	fake := &testutil.FakeConn{}
	a.dial = func(context.Context, *model.System) (model.Connection, error) { return fake, nil }
	require.NoError(t, a.Run(context.Background()))
	assert.True(t, fake.Closed)

	boom := errors.New("no route to host")
	a.dial = func(context.Context, *model.System) (model.Connection, error) { return nil, boom }
	require.ErrorIs(t, a.Run(context.Background()), boom)
}

func TestRunList(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"hosts.hcl": `host "web1" { roles = ["greeter"] }`})
	logs := &testutil.SafeBuffer{}
	cfg, err := NewConfig(Config{InventoryPath: dir, List: true})
	require.NoError(t, err)

	var out bytes.Buffer
	a := NewApp(logs, cfg, &print.Module{Out: &out}, greeterModule())
	a.outW = &out

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "web1\trole(greeter)")
	assert.Contains(t, out.String(), "Roles:\n  greeter")
	assert.Contains(t, out.String(), "Resource types:\n  print")
	assert.NotContains(t, out.String(), "message =", "listing does not converge")
}

func TestRunUsesInventoryRoles(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"hosts.toml": `
[[role]]
name = "site"
components = ["print/hello", { name = "print/tuned", options = { level = "high" } }]

[[host]]
name = "web1"
roles = ["site"]
`})
	var out bytes.Buffer
	a, _ := setupApp(t, Config{InventoryPath: dir}, &print.Module{Out: &out})

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t,
		"[web1]      message = \"hello\"\n"+
			"[web1]      level = \"high\"\n[web1]      message = \"tuned\"\n",
		out.String())
}

func TestLoadInventoryRejectsRoleClash(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"hosts.hcl": `
role "greeter" {
  components = ["print/other"]
}
`})
	a, _ := setupApp(t, Config{InventoryPath: dir}, &print.Module{Out: &bytes.Buffer{}}, greeterModule())
	require.ErrorIs(t, a.LoadInventory(context.Background()), blueprint.ErrDuplicate)
	assert.Nil(t, a.Project())
}

func TestLoadInventoryErrors(t *testing.T) {
	a, _ := setupApp(t, Config{InventoryPath: filepath.Join(t.TempDir(), "missing.hcl")})
	require.Error(t, a.LoadInventory(context.Background()))
	assert.Nil(t, a.Project())
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"hosts.hcl": `host "web1" { roles = ["greeter"] }`})
	a, _ := setupApp(t, Config{InventoryPath: dir}, &print.Module{Out: &bytes.Buffer{}}, greeterModule())
	require.NoError(t, a.Run(context.Background()))

	srv := httptest.NewServer(a.handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), `baton_builds_total{outcome="done"} 1`)
	assert.Contains(t, body.String(), "baton_procedures_applied_total 1")
}

func TestNewAppPanicsOnInvalidRegistry(t *testing.T) {
	cfg, err := NewConfig(Config{InventoryPath: "x"})
	require.NoError(t, err)

	assert.Panics(t, func() {
		NewApp(&bytes.Buffer{}, cfg, moduleFunc(func(r *registry.Registry) {
			r.RegisterRole(blueprint.NewRole("web", model.Component("pkg/nginx", nil)))
		}))
	})
}

func TestDefaultModules(t *testing.T) {
	cfg, err := NewConfig(Config{InventoryPath: "x"})
	require.NoError(t, err)
	a := NewApp(&bytes.Buffer{}, cfg)
	assert.Equal(t, []string{"command", "http_check", "print"}, a.Registry().ProcedureTypes())
}
