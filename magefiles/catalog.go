//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Seed imports every YAML file under seeds/ into the catalog.
func Seed() error {
	mg.Deps(Init, Build)

	files, err := filepath.Glob(filepath.Join("seeds", "*.yaml"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("[seed] No seed files in seeds/.")
		return nil
	}
	return sh.RunV(binPath(), append([]string{"import"}, files...)...)
}

// Export writes the whole catalog to catalog/index/export.yaml.
func Export() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "export", "--format", "yaml")
}

// Serve builds the CLI and starts the HTTP search endpoint.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "serve")
}
