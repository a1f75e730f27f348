package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/ports"
)

const (
	DefaultMarkerURL   = "https://www.plazmaburst2.com/launcher/time.php"
	DefaultGameDataURL = "https://www.plazmaburst2.com/pb2/pb2_re34.swf"

	MarkerFileName   = "last_update.v"
	GameDataFileName = "pb2_re34_alt.swf"
)

type UpdateOptions struct {
	// Dir contient le lecteur, le marqueur et le swf (dossier de l'exécutable).
	Dir         string
	Player      domain.DownloadInfo
	MarkerURL   string
	GameDataURL string
}

func (o UpdateOptions) withDefaults() UpdateOptions {
	if o.MarkerURL == "" {
		o.MarkerURL = DefaultMarkerURL
	}
	if o.GameDataURL == "" {
		o.GameDataURL = DefaultGameDataURL
	}
	return o
}

func (o UpdateOptions) PlayerPath() string   { return filepath.Join(o.Dir, o.Player.LocalFileName) }
func (o UpdateOptions) MarkerPath() string   { return filepath.Join(o.Dir, MarkerFileName) }
func (o UpdateOptions) GameDataPath() string { return filepath.Join(o.Dir, GameDataFileName) }

// UpdateService décide quels fichiers manquent ou sont périmés et les télécharge.
//
// Le lecteur n'est téléchargé que s'il est absent. La paire marqueur + swf est
// re-téléchargée quand le contenu du marqueur distant diffère de la copie locale.
type UpdateService struct {
	logger  zerolog.Logger
	fetcher ports.Fetcher
	bus     ports.EventBus
	opts    UpdateOptions
	limiter *Limiter
}

func NewUpdateService(logger zerolog.Logger, fetcher ports.Fetcher, bus ports.EventBus, opts UpdateOptions) *UpdateService {
	return &UpdateService{
		logger:  logger,
		fetcher: fetcher,
		bus:     bus,
		opts:    opts.withDefaults(),
		limiter: NewLimiter(1),
	}
}

func (s *UpdateService) Options() UpdateOptions { return s.opts }

// Check calcule l'état des fichiers sans rien télécharger.
// Seule la lecture du marqueur distant peut échouer (erreur transport).
func (s *UpdateService) Check(ctx context.Context) ([]domain.AssetStatus, error) {
	player := domain.AssetStatus{Kind: domain.AssetPlayer, State: domain.AssetMissing, Path: s.opts.PlayerPath()}
	if fileExists(player.Path) {
		player.State = domain.AssetPresent
	}

	game := domain.AssetStatus{Kind: domain.AssetGame, State: domain.AssetMissing, Path: s.opts.GameDataPath()}
	if fileExists(s.opts.MarkerPath()) {
		stale, err := s.markerStale(ctx)
		if err != nil {
			return []domain.AssetStatus{player}, err
		}
		game.State = domain.AssetCurrent
		if stale {
			game.State = domain.AssetStale
		}
	}
	return []domain.AssetStatus{player, game}, nil
}

func (s *UpdateService) markerStale(ctx context.Context) (bool, error) {
	// Marqueur illisible = contenu vide, donc forcément différent du distant.
	local, _ := os.ReadFile(s.opts.MarkerPath())
	remote, err := s.fetcher.Fetch(ctx, s.opts.MarkerURL)
	if err != nil {
		return false, err
	}
	return !bytes.Equal(local, remote), nil
}

// UpdateRun est un cycle de mise à jour en cours. Les appelants UI l'ignorent;
// la CLI et les tests attendent sa fin avec Wait.
type UpdateRun struct {
	ID string

	mu      sync.Mutex
	results []domain.DownloadResult
	done    chan struct{}
}

func (r *UpdateRun) add(res domain.DownloadResult) {
	r.mu.Lock()
	r.results = append(r.results, res)
	r.mu.Unlock()
}

func (r *UpdateRun) Done() <-chan struct{} { return r.done }

// Wait bloque jusqu'à la fin du cycle et renvoie un résultat par fichier tenté.
func (r *UpdateRun) Wait() []domain.DownloadResult {
	<-r.done
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.DownloadResult(nil), r.results...)
}

// Start lance un cycle en arrière-plan et rend la main immédiatement.
// Les cycles sont sérialisés; ctx borne l'attente du slot et les requêtes.
func (s *UpdateService) Start(ctx context.Context) *UpdateRun {
	run := &UpdateRun{ID: xid.New().String(), done: make(chan struct{})}
	logger := s.logger.With().Str("run_id", run.ID).Logger()

	go func() {
		defer close(run.done)
		if err := s.limiter.Acquire(ctx); err != nil {
			logger.Warn().Err(err).Msg("update cycle not started")
			return
		}
		defer s.limiter.Release()

		publishJSON(s.bus, TopicUpdateStarted, UpdateEvent{RunID: run.ID})

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.updatePlayer(ctx, logger, run)
		}()
		go func() {
			defer wg.Done()
			s.updateGame(ctx, logger, run)
		}()
		wg.Wait()

		evt := UpdateEvent{RunID: run.ID}
		for _, res := range run.results {
			if res.OK() {
				evt.Completed++
			} else {
				evt.Failed++
			}
		}
		publishJSON(s.bus, TopicUpdateFinished, evt)
		logger.Info().Int("completed", evt.Completed).Int("failed", evt.Failed).Msg("update cycle finished")
	}()

	return run
}

func (s *UpdateService) updatePlayer(ctx context.Context, logger zerolog.Logger, run *UpdateRun) {
	path := s.opts.PlayerPath()
	if fileExists(path) {
		logger.Info().Str("path", path).Msg("flash player already present")
		return
	}
	if s.opts.Player.RemoteURL == "" {
		logger.Warn().Msg("no flash player download for this platform")
		return
	}
	s.download(ctx, logger, run, "player", s.opts.Player.RemoteURL, path, 0o755)
}

func (s *UpdateService) updateGame(ctx context.Context, logger zerolog.Logger, run *UpdateRun) {
	if fileExists(s.opts.MarkerPath()) {
		stale, err := s.markerStale(ctx)
		if err != nil {
			logger.Warn().Err(err).Str("code", ErrorCode(err)).Msg("failed to read remote version marker")
			return
		}
		if !stale {
			logger.Info().Msg("game data is up to date")
			return
		}
		logger.Info().Msg("game update available")
	}

	// Pas de rollback: un marqueur téléchargé sans son swf reste en place.
	s.download(ctx, logger, run, "marker", s.opts.MarkerURL, s.opts.MarkerPath(), 0o644)
	s.download(ctx, logger, run, "game", s.opts.GameDataURL, s.opts.GameDataPath(), 0o644)
}

func (s *UpdateService) download(ctx context.Context, logger zerolog.Logger, run *UpdateRun, name, url, dst string, mode os.FileMode) {
	n, err := s.fetcher.Download(ctx, url, dst, mode)
	res := domain.DownloadResult{Name: name, URL: url, Path: dst, Bytes: n, Err: err}
	run.add(res)

	evt := DownloadEvent{RunID: run.ID, Name: name, URL: url, Path: dst}
	if err != nil {
		logger.Error().Err(err).Str("code", ErrorCode(err)).Str("name", name).Str("url", url).Msg("download failed")
		evt.ErrorCode = ErrorCode(err)
		evt.Error = err.Error()
		publishJSON(s.bus, TopicDownloadFailed, evt)
		return
	}
	evt.Bytes = n
	evt.Size = humanize.Bytes(uint64(n))
	logger.Info().Str("name", name).Str("size", evt.Size).Str("path", dst).Msg("downloaded")
	publishJSON(s.bus, TopicDownloadCompleted, evt)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
