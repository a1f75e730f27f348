// Package platform résout la cible (OS, architecture) du launcher et l'artefact
// du lecteur Flash à télécharger pour cette cible.
package platform

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
)

// ErrUnsupportedPlatform est fatal: aucun lecteur n'est publié pour cette cible.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

const playerBaseURL = "https://github.com/luadebug/PB2GameLauncher/raw/main/"

var downloadTable = map[domain.PlatformTarget]domain.DownloadInfo{
	{OS: domain.OSWindows, Arch: domain.ArchX86_64}: {
		RemoteURL:     playerBaseURL + "flashplayer-x86_64-pc-windows-msvc.exe",
		LocalFileName: "flashplayer.exe",
	},
	{OS: domain.OSWindows, Arch: domain.ArchI686}: {
		RemoteURL:     playerBaseURL + "flashplayer-i686-pc-windows-msvc.exe",
		LocalFileName: "flashplayer.exe",
	},
	{OS: domain.OSMacOS, Arch: domain.ArchNotApplicable}: {
		RemoteURL:     playerBaseURL + "flashplayer_32_sa.dmg",
		LocalFileName: "flashplayer.dmg",
	},
	{OS: domain.OSLinux, Arch: domain.ArchX86_64}: {
		RemoteURL:     playerBaseURL + "flashplayer-x86_64-unknown-linux-gnu",
		LocalFileName: "flashplayer",
	},
	{OS: domain.OSLinux, Arch: domain.ArchI686}: {
		RemoteURL:     playerBaseURL + "flashplayer-i686-unknown-linux-gnu",
		LocalFileName: "flashplayer",
	},
}

// Current résout la cible du binaire en cours d'exécution.
func Current() (domain.PlatformTarget, error) {
	return Resolve(runtime.GOOS, runtime.GOARCH)
}

// Resolve prend les valeurs GOOS/GOARCH. macOS n'a pas d'axe architecture.
func Resolve(goos, goarch string) (domain.PlatformTarget, error) {
	switch goos {
	case "darwin":
		return domain.PlatformTarget{OS: domain.OSMacOS, Arch: domain.ArchNotApplicable}, nil
	case "windows", "linux":
		arch, ok := archOf(goarch)
		if !ok {
			return domain.PlatformTarget{}, fmt.Errorf("%w: %s/%s", ErrUnsupportedPlatform, goos, goarch)
		}
		family := domain.OSLinux
		if goos == "windows" {
			family = domain.OSWindows
		}
		return domain.PlatformTarget{OS: family, Arch: arch}, nil
	default:
		return domain.PlatformTarget{}, fmt.Errorf("%w: %s/%s", ErrUnsupportedPlatform, goos, goarch)
	}
}

func archOf(goarch string) (domain.Arch, bool) {
	switch goarch {
	case "amd64":
		return domain.ArchX86_64, true
	case "386":
		return domain.ArchI686, true
	default:
		return "", false
	}
}

func DownloadInfoFor(target domain.PlatformTarget) (domain.DownloadInfo, error) {
	info, ok := downloadTable[target]
	if !ok {
		return domain.DownloadInfo{}, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, target)
	}
	return info, nil
}

// Detect combine Current et DownloadInfoFor; appelé au démarrage, avant tout accès réseau.
func Detect() (domain.PlatformTarget, domain.DownloadInfo, error) {
	target, err := Current()
	if err != nil {
		return domain.PlatformTarget{}, domain.DownloadInfo{}, err
	}
	info, err := DownloadInfoFor(target)
	if err != nil {
		return domain.PlatformTarget{}, domain.DownloadInfo{}, err
	}
	return target, info, nil
}
