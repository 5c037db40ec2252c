package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/baton/internal/ctxlog"
	"github.com/specialistvlad/baton/internal/model"
	"github.com/specialistvlad/baton/internal/worker"
	"golang.org/x/sync/errgroup"
)

// Run converges every selected system. Systems are independent: one failing
// does not stop the others, and every failure is part of the returned error.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.MetricsPort > 0 {
		if err := a.startServer(ctx); err != nil {
			return err
		}
		defer a.closeServer(ctx)
	}

	if a.project == nil {
		if err := a.LoadInventory(ctx); err != nil {
			return err
		}
	}

	if a.config.List {
		return a.list()
	}

	systems, err := a.project.Select(a.config.Hosts...)
	if err != nil {
		return err
	}
	if len(systems) == 0 {
		a.logger.Warn("No hosts selected, convergence not required.")
		return nil
	}

	a.logger.Info("Starting convergence...", "hosts", len(systems), "parallel", a.config.Parallel)

	errs := make([]error, len(systems))
	var g errgroup.Group
	g.SetLimit(a.config.Parallel)
	for i, sys := range systems {
		g.Go(func() error {
			if err := a.converge(ctx, sys); err != nil {
				errs[i] = fmt.Errorf("system %q: %w", sys.Name, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	a.logger.Info("Convergence finished.", "succeeded", len(systems)-failed, "failed", failed)
	return errors.Join(errs...)
}

// converge runs one build for sys over a fresh connection and blueprint.
func (a *App) converge(ctx context.Context, sys *model.System) error {
	c, err := a.dial(ctx, sys)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			a.logger.Warn("Closing connection failed.", "system", sys.Name, "error", err)
		}
	}()

	bp, err := a.blueprint()
	if err != nil {
		return err
	}
	return worker.New(sys, c, a.registry, worker.WithMetrics(a.metrics)).Build(ctx, bp)
}

// list writes the inventory and the registered definitions to the output.
func (a *App) list() error {
	bp, err := a.blueprint()
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("Hosts:\n")
	for _, sys := range a.project.Systems() {
		var steps []string
		for _, step := range sys.Steps() {
			steps = append(steps, step.String())
		}
		fmt.Fprintf(&b, "  %s\t%s\n", sys.Name, strings.Join(steps, ", "))
	}
	fmt.Fprintf(&b, "Roles:\n  %s\n", strings.Join(bp.Roles(), ", "))
	fmt.Fprintf(&b, "Components:\n  %s\n", strings.Join(bp.Components(), ", "))
	fmt.Fprintf(&b, "Resource types:\n  %s\n", strings.Join(a.registry.ProcedureTypes(), ", "))

	_, err = fmt.Fprint(a.outW, b.String())
	return err
}
