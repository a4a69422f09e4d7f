// Package main is the entry point for the CSV insights service.
package main

import (
	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/kart-io/wizora/cmd/csv-insights/app"
)

func main() {
	app.NewApp().Run()
}
