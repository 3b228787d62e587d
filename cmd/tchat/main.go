package main

import (
	"flag"

	"github.com/matheus3301/tchat/internal/app"
	"github.com/matheus3301/tchat/internal/config"
	"go.uber.org/fx"
)

func main() {
	configFlag := flag.String("config", config.DefaultPath(), "path to config file")
	flag.Parse()

	fx.New(
		app.Module(app.Params{ConfigPath: *configFlag}),
		fx.NopLogger,
	).Run()
}
