// Package main is the entry point for the image proxy.
package main

import (
	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/kart-io/wizora/cmd/image-proxy/app"
)

func main() {
	app.NewApp().Run()
}
