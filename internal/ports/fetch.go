package ports

import (
	"context"
	"os"
)

type Fetcher interface {
	// Fetch lit une petite ressource (ex: le marqueur de version) en mémoire.
	Fetch(ctx context.Context, url string) ([]byte, error)
	// Download remplace dst par la ressource distante et renvoie le nombre d'octets écrits.
	Download(ctx context.Context, url string, dst string, mode os.FileMode) (int64, error)
}

type Spawner interface {
	// Spawn lance le processus sans attendre sa fin et renvoie son pid.
	Spawn(path string, args ...string) (int, error)
}
