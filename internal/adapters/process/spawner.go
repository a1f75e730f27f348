// Package process lance le lecteur Flash sans le superviser.
package process

import (
	"os/exec"

	"github.com/rs/zerolog"
)

type Spawner struct {
	logger zerolog.Logger
}

func NewSpawner(logger zerolog.Logger) *Spawner {
	return &Spawner{logger: logger}
}

// Spawn démarre le processus et rend la main. Un Wait en arrière-plan
// récupère le code de sortie pour ne pas laisser de zombie.
func (s *Spawner) Spawn(path string, args ...string) (int, error) {
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	go func() {
		err := cmd.Wait()
		ev := s.logger.Info()
		if err != nil {
			ev = s.logger.Warn().Err(err)
		}
		ev.Int("pid", pid).Msg("game process exited")
	}()
	return pid, nil
}
