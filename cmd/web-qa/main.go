// Package main is the entry point for the web QA service.
package main

import (
	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/kart-io/wizora/cmd/web-qa/app"
)

func main() {
	app.NewApp().Run()
}
