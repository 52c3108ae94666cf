package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"district/internal/bootstrap"
)

// @title District API
// @version 1.0
// @description Media and CMS globals for the District site.
// @BasePath /
func main() {
	if err := bootstrap.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "district: %v\n", err)
		os.Exit(1)
	}
}
