package modules

import (
	"context"

	"github.com/ledgerflow/practice-sdk/modules/core"
	"github.com/ledgerflow/practice-sdk/modules/crm"
	"github.com/ledgerflow/practice-sdk/modules/projects"
	"github.com/ledgerflow/practice-sdk/pkg/application"
)

var BuiltInModules = []application.Module{
	core.NewModule(),
	projects.NewModule(),
	crm.NewModule(),
}

func Load(ctx context.Context, app application.Application, mods ...application.Module) error {
	return application.LoadModules(ctx, app, mods...)
}
