package main

import (
	"github.com/joho/godotenv"

	"github.com/khrees2412/cvblue/cmd"
)

func main() {
	// CVBLUE_* overrides may live in a local .env
	_ = godotenv.Load()
	cmd.Execute()
}
