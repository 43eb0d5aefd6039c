package main

import (
	"github.com/iridum-cli/iridum/cmd"
	"github.com/iridum-cli/iridum/config"
	"github.com/iridum-cli/iridum/internal/cache"
	"github.com/iridum-cli/iridum/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
