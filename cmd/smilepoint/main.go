// Package main is the single-binary entrypoint for SmilePoint.
package main

import "github.com/smilepoint-health/smilepoint/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
