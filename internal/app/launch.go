package app

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/ports"
)

// BuildArgument construit l'unique argument passé au lecteur Flash.
// Les valeurs ne sont pas échappées: le jeu lit la query string telle quelle.
func BuildArgument(swfPath string, creds domain.Credentials) string {
	return swfPath + "?l=" + creds.Username + "&p=" + creds.Password + "&from_standalone=1"
}

// SWFPath renvoie le chemin absolu canonique du swf local, ou le nom nu si le
// fichier ne peut pas être résolu.
func SWFPath(dir string) string {
	path := filepath.Join(dir, GameDataFileName)
	abs, err := filepath.Abs(path)
	if err != nil {
		return GameDataFileName
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return GameDataFileName
	}
	return resolved
}

type LaunchService struct {
	logger  zerolog.Logger
	store   ports.CredentialStore
	spawner ports.Spawner
	bus     ports.EventBus
	dir     string
	player  domain.DownloadInfo
}

func NewLaunchService(logger zerolog.Logger, store ports.CredentialStore, spawner ports.Spawner, bus ports.EventBus, dir string, player domain.DownloadInfo) *LaunchService {
	return &LaunchService{logger: logger, store: store, spawner: spawner, bus: bus, dir: dir, player: player}
}

// Credentials renvoie les identifiants stockés, ou l'invité si aucun n'est exploitable.
func (s *LaunchService) Credentials(ctx context.Context) (domain.Credentials, bool) {
	if s.store == nil {
		return domain.GuestCredentials(), true
	}
	creds, ok, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("code", ErrorCode(err)).Msg("failed to read auth file, playing as guest")
		return domain.GuestCredentials(), true
	}
	if !ok {
		return domain.GuestCredentials(), true
	}
	return creds, false
}

// Play lance le lecteur sans attendre ni surveiller le processus. Renvoie son pid.
func (s *LaunchService) Play(ctx context.Context) (int, error) {
	creds, guest := s.Credentials(ctx)
	player := filepath.Join(s.dir, s.player.LocalFileName)
	arg := BuildArgument(SWFPath(s.dir), creds)

	evt := LaunchEvent{Player: player, Guest: guest}
	pid, err := s.spawner.Spawn(player, arg)
	if err != nil {
		s.logger.Error().Err(err).Str("player", player).Msg("failed to start game process")
		evt.ErrorCode = ErrorCode(err)
		evt.Error = err.Error()
		publishJSON(s.bus, TopicLaunchFailed, evt)
		return 0, err
	}

	evt.PID = pid
	s.logger.Info().Int("pid", pid).Str("player", player).Bool("guest", guest).Msg("game process started")
	publishJSON(s.bus, TopicLaunchStarted, evt)
	return pid, nil
}
