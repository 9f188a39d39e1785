package main

import (
	"inkwell-server/setup"
)

func main() {
	cfg := setup.MustLoadConfig()
	setup.MustInitDb(cfg)
	setup.MustInitAssets(cfg)
	setup.StartServer(cfg, routes())
}
