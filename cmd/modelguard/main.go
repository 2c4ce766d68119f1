package main

import (
	"context"
	"os"

	"modelguard/internal/cli"
)

func main() {
	os.Exit(cli.ExecuteContext(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
