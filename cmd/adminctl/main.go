package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/skycastlabs/accounts/internal/adminctl"
)

func main() {

	serverURL := flag.String("s", "http://localhost:5000", "accounts server base URL")
	flag.Parse()

	ctx := context.Background()
	app := adminctl.NewApp(*serverURL, os.Stdin, os.Stdout)

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
