package domain

import "strings"

// WelcomePrefix est le seul critère de succès d'un login: le site renvoie
// "Welcome back, <nom>!" et rien d'autre n'est fiable dans ses réponses.
const WelcomePrefix = "Welcome back"

// NoConnectionMessage est renvoyé quand aucune réponse connue n'a été reconnue.
const NoConnectionMessage = "No connection to game server."

// LoaderFailedMessage est renvoyé par le loader legacy sur un statut != 200.
const LoaderFailedMessage = "Failed to login."

type LoginMethod string

const (
	LoginWebsitePassword    LoginMethod = "website_password"
	LoginWebsiteMD5         LoginMethod = "website_md5"
	LoginStandaloneLauncher LoginMethod = "standalone_launcher"
)

// Suffix renvoie l'annotation ajoutée au message de bienvenue.
func (m LoginMethod) Suffix() string {
	switch m {
	case LoginWebsitePassword:
		return "\r\n(Signed with password for game website)"
	case LoginWebsiteMD5:
		return "\r\n(Signed with md5 password for game website)"
	case LoginStandaloneLauncher:
		return "\r\n(Signed in with password for standalone launcher)"
	default:
		return ""
	}
}

type LoginOutcome struct {
	RawMessage string      `json:"message"`
	Succeeded  bool        `json:"succeeded"`
	Method     LoginMethod `json:"method"`
}

func NewLoginOutcome(message string, method LoginMethod) LoginOutcome {
	return LoginOutcome{RawMessage: message, Succeeded: IsWelcome(message), Method: method}
}

func IsWelcome(message string) bool {
	return strings.HasPrefix(message, WelcomePrefix)
}

// StandaloneWelcome reconstruit le message de bienvenue quand seul le loader legacy a accepté le login.
func StandaloneWelcome(username string) string {
	return WelcomePrefix + ", " + username + " ! " + LoginStandaloneLauncher.Suffix()
}
