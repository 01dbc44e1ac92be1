package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/git-pkgs/versionbadge/internal/build"
	"github.com/git-pkgs/versionbadge/internal/cmd"
	"github.com/git-pkgs/versionbadge/internal/log"
)

func main() {
	// .env is optional; it usually carries GITHUB_TOKEN
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func run() error {
	defer log.Close()

	rootCmd := cmd.NewRootCmd(build.Version, build.Date)
	_, err := rootCmd.ExecuteC()
	return err
}

type exitCoder interface {
	ExitCode() int
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var coded exitCoder
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}

	return 1
}
