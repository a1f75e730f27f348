package ports

import (
	"context"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
)

// LoginStrategy est une des façons historiques de s'authentifier auprès du site.
// Une erreur signifie un échec transport; une réponse reconnue mais négative
// est un LoginOutcome avec Succeeded=false.
type LoginStrategy interface {
	Name() string
	Attempt(ctx context.Context, creds domain.Credentials) (domain.LoginOutcome, error)
}

type CredentialStore interface {
	// Load renvoie false si aucun identifiant exploitable n'est stocké.
	Load(ctx context.Context) (domain.Credentials, bool, error)
	Save(ctx context.Context, creds domain.Credentials) error
}
