package main

import (
	"os"

	"github.com/lexbrit/traduko/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
