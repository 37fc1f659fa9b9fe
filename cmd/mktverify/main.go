package main

import (
	"github.com/joho/godotenv"

	"github.com/mktdata/mktverify/cmd/mktverify/cmd"
)

func main() {
	// Optional .env for local overrides; a missing file is fine.
	_ = godotenv.Load()

	cmd.Execute()
}
