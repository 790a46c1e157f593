package main

import "github.com/vodtools/vodindex/internal/app"

// version is set via ldflags at release time.
var version = "dev"

func main() {
	app.ExecutePlayer(version)
}
