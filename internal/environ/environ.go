// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package environ loads process environment defaults from a dotenv file.
// Variables already present in the environment win over the file, so a
// PROJECT_CATALOG_* export in the shell always overrides .env.
package environ

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/joho/godotenv"
)

// Load reads path and sets every variable it defines that is not already
// set. It returns the sorted names it applied. A missing file is not an
// error; Load returns nil.
func Load(path string) ([]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var applied []string
	for key, value := range values {
		if _, ok := os.LookupEnv(key); ok {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return nil, fmt.Errorf("setting %s: %w", key, err)
		}
		applied = append(applied, key)
	}
	sort.Strings(applied)
	return applied, nil
}
