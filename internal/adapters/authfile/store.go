// Package authfile lit et écrit le fichier d'identifiants du launcher:
// deux lignes en clair (login puis mot de passe), sans version ni chiffrement.
package authfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/app"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
)

// FileName est le nom attendu par le jeu, à côté de l'exécutable.
const FileName = "Plazma Burst 2.auth"

func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Write crée (ou tronque) le fichier et écrit username puis password, chacun suivi de "\n".
func Write(path, username, password string) error {
	f, err := os.Create(path)
	if err != nil {
		return app.NewCodedError(app.CodeIO, "create auth file", err)
	}
	if _, err := fmt.Fprintf(f, "%s\n%s\n", username, password); err != nil {
		_ = f.Close()
		return app.NewCodedError(app.CodeIO, "write auth file", err)
	}
	if err := f.Close(); err != nil {
		return app.NewCodedError(app.CodeIO, "close auth file", err)
	}
	return nil
}

// Read renvoie ok=false si le fichier est absent ou ne contient pas deux valeurs non vides.
// L'appelant retombe alors sur l'identité invité.
func Read(path string) (domain.Credentials, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Credentials{}, false, nil
		}
		return domain.Credentials{}, false, app.NewCodedError(app.CodeIO, "read auth file", err)
	}
	username, rest, found := strings.Cut(string(b), "\n")
	if !found {
		return domain.Credentials{}, false, nil
	}
	username = strings.TrimSuffix(username, "\r")
	password := strings.TrimSuffix(strings.TrimSuffix(rest, "\n"), "\r")
	if username == "" || password == "" {
		return domain.Credentials{}, false, nil
	}
	return domain.Credentials{Username: username, Password: password}, true, nil
}

// Store lie Read/Write à un chemin fixe et implémente ports.CredentialStore.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

func (s *Store) Load(ctx context.Context) (domain.Credentials, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Credentials{}, false, err
	}
	return Read(s.path)
}

func (s *Store) Save(ctx context.Context, creds domain.Credentials) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return Write(s.path, creds.Username, creds.Password)
}
