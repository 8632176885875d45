package pkg

import (
	"os"
	"path/filepath"
)

func GetServerPort() string {
	port := os.Getenv("PORT")

	if port == "" {
		port = "8080"
	}

	return port
}

// FindProjectRoot walks up from the working directory until it finds go.mod.
func FindProjectRoot() string {
	dir, err := os.Getwd()

	if err != nil {
		return "."
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)

		if parent == dir {
			return "."
		}

		dir = parent
	}
}
