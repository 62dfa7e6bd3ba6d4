package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/client/cli"
)

func main() {

	app := cli.NewApp(cli.DefaultClientFactory, os.Stdin, os.Stdout)

	if err := app.Execute(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

}
