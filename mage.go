//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	sqliteFileLocation = "cartola.sqlite"
	serverBin          = "./bin/server"
)

func goModDownload() error {
	return sh.Run("go", "mod", "download")
}

// Build builds server binary
func Build() error {
	mg.Deps(goModDownload)
	return sh.Run("go", "build", "-o", serverBin, "cmd/main.go")
}

// Run starts server
func Run() error {
	mg.Deps(Build)
	return sh.Run(serverBin)
}

func Lint() error {
	return sh.Run("golangci-lint", "run", "./...")
}

func Test() error {
	return sh.Run("go", "test", "./...")
}

// Clean removes build artifacts and the local database.
func Clean() error {
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	return sh.Rm(sqliteFileLocation)
}
