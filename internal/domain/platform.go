package domain

type OS string

const (
	OSWindows OS = "windows"
	OSMacOS   OS = "macos"
	OSLinux   OS = "linux"
)

type Arch string

const (
	ArchX86_64        Arch = "x86_64"
	ArchI686          Arch = "i686"
	ArchNotApplicable Arch = "n/a"
)

// PlatformTarget est résolu une fois au démarrage et ne change plus ensuite.
type PlatformTarget struct {
	OS   OS   `json:"os"`
	Arch Arch `json:"arch"`
}

func (t PlatformTarget) String() string {
	if t.Arch == ArchNotApplicable || t.Arch == "" {
		return string(t.OS)
	}
	return string(t.OS) + "/" + string(t.Arch)
}

type DownloadInfo struct {
	RemoteURL     string `json:"remoteUrl"`
	LocalFileName string `json:"localFileName"`
}
