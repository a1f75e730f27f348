package domain

type AssetKind string

const (
	AssetPlayer AssetKind = "player"
	AssetGame   AssetKind = "game"
)

type AssetState string

const (
	AssetMissing AssetState = "missing"
	// AssetPresent: le lecteur existe localement; il n'est jamais revalidé.
	AssetPresent AssetState = "present"
	AssetStale   AssetState = "stale"
	AssetCurrent AssetState = "current"
)

// NeedsDownload vaut true pour les états qui déclenchent un téléchargement.
func (s AssetState) NeedsDownload() bool {
	return s == AssetMissing || s == AssetStale
}

type AssetStatus struct {
	Kind  AssetKind  `json:"kind"`
	State AssetState `json:"state"`
	Path  string     `json:"path"`
}

// DownloadResult décrit un fichier récupéré (ou non) pendant un cycle de mise à jour.
type DownloadResult struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
	Err   error  `json:"-"`
}

func (r DownloadResult) OK() bool { return r.Err == nil }
