package app

import (
	"io"

	"github.com/specialistvlad/baton/internal/registry"
	"github.com/specialistvlad/baton/modules/command"
	"github.com/specialistvlad/baton/modules/httpcheck"
	"github.com/specialistvlad/baton/modules/print"
)

// coreModules is the definitive list of all modules that are compiled into
// the baton binary. out receives the output of the print module.
func coreModules(out io.Writer) []registry.Module {
	return []registry.Module{
		&print.Module{Out: out},
		&command.Module{},
		&httpcheck.Module{},
	}
}
