package main

import (
	"github.com/aramroll/aramroll/internal/cli"
)

func main() {
	cli.Execute()
}
