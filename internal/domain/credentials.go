package domain

import "regexp"

// GuestName est utilisé à la fois comme login et mot de passe quand aucun
// fichier d'auth valide n'existe.
const GuestName = ".guest"

var reMD5Digest = regexp.MustCompile(`^[a-f0-9]{32}$`)

// Credentials sont stockées en clair à côté de l'exécutable (comportement historique du launcher).
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"-"`
}

func GuestCredentials() Credentials {
	return Credentials{Username: GuestName, Password: GuestName}
}

// IsMD5Digest indique si le mot de passe est déjà un digest MD5 hexadécimal minuscule.
func IsMD5Digest(password string) bool {
	return reMD5Digest.MatchString(password)
}
