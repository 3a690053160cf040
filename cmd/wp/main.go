package main

import (
	"github.com/joho/godotenv"

	"waypoint/cmd/wp/root"
)

func main() {
	// A .env in the working directory is optional.
	_ = godotenv.Load()
	root.Execute()
}
