package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/baton/internal/blueprint"
	"github.com/specialistvlad/baton/internal/model"
	"github.com/specialistvlad/baton/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureProc struct {
	attrs map[string]any
}

func (p *captureProc) Execute(context.Context, *model.System, model.Connection) error { return nil }

func captureCtor(attrs map[string]any) (model.Procedure, error) {
	return &captureProc{attrs: attrs}, nil
}

var emptyComponent = blueprint.ComponentFunc(func(context.Context, string, map[string]any, *model.System, *blueprint.Blueprint) ([]model.ResourceDeclaration, error) {
	return nil, nil
})

type moduleFunc func(r *Registry)

func (f moduleFunc) Register(r *Registry) { f(r) }

func TestResolve(t *testing.T) {
	r := New()
	r.RegisterProcedure("package", captureCtor)

	attrs := map[string]any{"name": "nginx", "opts": map[string]any{"pin": "1.2"}}
	proc, err := r.Resolve("package", attrs)
	require.NoError(t, err)
	assert.Equal(t, "package", model.ProcedureName(proc))

	named, ok := proc.(interface{ Unwrap() model.Procedure })
	require.True(t, ok)
	got := named.Unwrap().(*captureProc)
	assert.Equal(t, attrs, got.attrs)

	got.attrs["opts"].(map[string]any)["pin"] = "9.9"
	assert.Equal(t, "1.2", attrs["opts"].(map[string]any)["pin"], "constructor must get a private copy")
}

func TestResolveUnknownType(t *testing.T) {
	r := New()
	_, err := r.Resolve("bogus", nil)
	require.ErrorIs(t, err, ErrUnknownResourceType)
	assert.Contains(t, err.Error(), "bogus")
}

func TestResolveConstructorError(t *testing.T) {
	r := New()
	boom := errors.New("bad attrs")
	r.RegisterProcedure("file", func(map[string]any) (model.Procedure, error) { return nil, boom })

	_, err := r.Resolve("file", nil)
	require.ErrorIs(t, err, boom)
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	r := New()
	r.RegisterProcedure("package", captureCtor)
	r.RegisterComponent("pkg", emptyComponent)
	r.RegisterRole(blueprint.NewRole("web"))

	assert.Panics(t, func() { r.RegisterProcedure("package", captureCtor) })
	assert.Panics(t, func() { r.RegisterComponent("pkg", emptyComponent) })
	assert.Panics(t, func() { r.RegisterRole(blueprint.NewRole("web")) })
}

func TestBlueprintIsFreshPerCall(t *testing.T) {
	r := New().Use(moduleFunc(func(r *Registry) {
		r.RegisterComponent("pkg", emptyComponent)
		r.RegisterRole(blueprint.NewRole("web", model.Component("pkg/nginx", nil)))
	}))

	bp1, err := r.Blueprint()
	require.NoError(t, err)
	bp2, err := r.Blueprint()
	require.NoError(t, err)

	assert.NotSame(t, bp1, bp2)
	assert.Equal(t, []string{"web"}, bp1.Roles())
	assert.Equal(t, []string{"pkg"}, bp2.Components())
}

func TestValidate(t *testing.T) {
	ctx, _ := testutil.LoggerContext(t)

	r := New()
	r.RegisterComponent("pkg", emptyComponent)
	r.RegisterRole(blueprint.NewRole("web", model.Component("pkg/nginx", nil)))
	require.NoError(t, r.Validate(ctx))

	r.RegisterRole(blueprint.NewRole("db", model.Component("svc/postgres", nil)))
	r.RegisterRole(blueprint.NewRole("nested", model.Role("web")))

	err := r.Validate(ctx)
	require.ErrorIs(t, err, blueprint.ErrComponentNotFound)
	require.ErrorIs(t, err, blueprint.ErrNestedRole)
	assert.Contains(t, err.Error(), `"svc"`)
}

func TestValidateRejectsSlashedComponentName(t *testing.T) {
	ctx, _ := testutil.LoggerContext(t)

	r := New()
	r.RegisterComponent("pkg/nginx", emptyComponent)
	require.ErrorIs(t, r.Validate(ctx), blueprint.ErrInvalidName)

	_, err := r.Blueprint()
	require.ErrorIs(t, err, blueprint.ErrInvalidName)
}

func TestValidateWarnsOnEmptyRole(t *testing.T) {
	ctx, buf := testutil.LoggerContext(t)

	r := New()
	r.RegisterRole(blueprint.NewRole("idle"))
	require.NoError(t, r.Validate(ctx))
	assert.Contains(t, buf.String(), "Role has no steps.")
}

func TestProcedureTypesSorted(t *testing.T) {
	r := New()
	r.RegisterProcedure("service", captureCtor)
	r.RegisterProcedure("file", captureCtor)
	assert.Equal(t, []string{"file", "service"}, r.ProcedureTypes())
}
