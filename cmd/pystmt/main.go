package main

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/panyam/pystmt/cmd/pystmt/commands"
)

func main() {
	envfile := ".env"
	if v := os.Getenv("PYSTMT_ENV_FILE"); v != "" {
		envfile = v
	}
	// A missing env file is fine, a broken one is not
	if err := godotenv.Load(envfile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal("Error loading env file ", envfile, ": ", err)
	}
	commands.Execute()
}
