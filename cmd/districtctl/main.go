package main

import (
	_ "github.com/joho/godotenv/autoload"

	"district/internal/cli"
)

func main() {
	cli.Execute()
}
