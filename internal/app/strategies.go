package app

import (
	"context"
	"strings"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
)

// WebsiteLogin est implémenté par pb2web.Client.
type WebsiteLogin interface {
	LoginWebsite(ctx context.Context, creds domain.Credentials) (string, error)
}

// LoaderLogin est implémenté par pb2web.Client.
type LoaderLogin interface {
	LoginLoader(ctx context.Context, creds domain.Credentials) (string, error)
}

// WebsiteStrategy passe par le formulaire du site et annote le message renvoyé.
type WebsiteStrategy struct {
	client WebsiteLogin
}

func NewWebsiteStrategy(client WebsiteLogin) *WebsiteStrategy {
	return &WebsiteStrategy{client: client}
}

func (s *WebsiteStrategy) Name() string { return "website" }

func (s *WebsiteStrategy) Attempt(ctx context.Context, creds domain.Credentials) (domain.LoginOutcome, error) {
	msg, err := s.client.LoginWebsite(ctx, creds)
	if err != nil {
		return domain.LoginOutcome{}, err
	}
	msg, method := annotateWebsiteMessage(msg, creds.Password)
	return domain.NewLoginOutcome(msg, method), nil
}

// annotateWebsiteMessage ajoute l'annotation de méthode au message du site.
// Un mot de passe déjà haché est annoté même si le message n'est pas un succès,
// tant que le texte ne porte pas déjà une annotation entre parenthèses.
func annotateWebsiteMessage(msg, password string) (string, domain.LoginMethod) {
	digest := domain.IsMD5Digest(password)
	switch {
	case digest && !strings.Contains(msg, "("):
		return msg + " " + domain.LoginWebsiteMD5.Suffix(), domain.LoginWebsiteMD5
	case domain.IsWelcome(msg):
		return msg + " " + domain.LoginWebsitePassword.Suffix(), domain.LoginWebsitePassword
	case digest:
		return msg, domain.LoginWebsiteMD5
	default:
		return msg, domain.LoginWebsitePassword
	}
}

// LoaderStrategy interroge le loader legacy. Le corps commence par "x"
// quand le serveur accepte les identifiants.
type LoaderStrategy struct {
	client LoaderLogin
}

func NewLoaderStrategy(client LoaderLogin) *LoaderStrategy {
	return &LoaderStrategy{client: client}
}

func (s *LoaderStrategy) Name() string { return "loader" }

func (s *LoaderStrategy) Attempt(ctx context.Context, creds domain.Credentials) (domain.LoginOutcome, error) {
	body, err := s.client.LoginLoader(ctx, creds)
	if err != nil {
		return domain.LoginOutcome{}, err
	}
	if strings.HasPrefix(body, "x") {
		return domain.NewLoginOutcome(domain.StandaloneWelcome(creds.Username), domain.LoginStandaloneLauncher), nil
	}
	return domain.LoginOutcome{RawMessage: body, Succeeded: false, Method: domain.LoginStandaloneLauncher}, nil
}
