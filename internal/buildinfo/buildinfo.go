package buildinfo

// Ces variables sont injectées à la compilation via -ldflags.
// Exemple :
//
//	-X github.com/Guilhem-Bonnet/PB2-Launcher/internal/buildinfo.Version=v0.3.0
//	-X github.com/Guilhem-Bonnet/PB2-Launcher/internal/buildinfo.Commit=abcdef
//	-X github.com/Guilhem-Bonnet/PB2-Launcher/internal/buildinfo.Date=2026-10-19
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Date    string `json:"date,omitempty"`
}

func Current() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// String est utilisé par la commande version et les logs de démarrage.
func (i Info) String() string {
	if i.Commit == "" {
		return "pb2-launcher " + i.Version
	}
	return "pb2-launcher " + i.Version + " (" + i.Commit + ")"
}
