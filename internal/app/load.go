package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/baton/internal/blueprint"
	"github.com/specialistvlad/baton/internal/ctxlog"
	"github.com/specialistvlad/baton/internal/inventory"
	"github.com/specialistvlad/baton/internal/template"
)

// LoadInventory reads the configured inventory file or directory.
func (a *App) LoadInventory(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading inventory...", "inventory_path", a.config.InventoryPath)

	project := inventory.NewProject()
	if err := a.loader.LoadPath(ctx, a.config.InventoryPath, project); err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}

	a.project = project
	if _, err := a.blueprint(); err != nil {
		a.project = nil
		return fmt.Errorf("failed to load inventory: %w", err)
	}
	logger.Info("Inventory loaded successfully.", "hosts_found", len(project.Names()), "roles_found", len(project.Roles()))
	return nil
}

// blueprint builds a fresh blueprint from the registry and adds the roles
// declared in the loaded inventory.
func (a *App) blueprint() (*blueprint.Blueprint, error) {
	bp, err := a.registry.Blueprint(blueprint.WithTemplates(template.Options{Root: a.config.TemplateRoot}))
	if err != nil {
		return nil, err
	}
	if a.project == nil {
		return bp, nil
	}
	for _, role := range a.project.Roles() {
		if err := bp.AddRole(role); err != nil {
			return nil, err
		}
	}
	return bp, nil
}
