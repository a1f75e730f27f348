package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/app"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/bootstrap"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/buildinfo"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/config"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/platform"
)

const usage = "Usage: pb2-launcher [-dir DIR] [login USER PASSWORD|update|status|play|news [PAGE]|version]"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run renvoie le code de sortie; les defers (fermeture du bus) s'exécutent avant os.Exit.
func run(argv []string, stdout, stderr io.Writer) int {
	exeDir, err := config.ExecutableDir()
	if err != nil {
		fmt.Fprintln(stderr, "Erreur:", err)
		return 1
	}
	fs := flag.NewFlagSet("pb2-launcher", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("dir", exeDir, "Dossier du launcher (auth, marqueur, swf, lecteur)")
	timeout := fs.Duration("timeout", 10*time.Minute, "Durée maximale d'une commande")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	args := fs.Args()
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return 2
	}
	if args[0] == "version" {
		fmt.Fprintln(stdout, buildinfo.Current().String())
		return 0
	}

	cfg, err := config.Load(*dir)
	if err != nil {
		fmt.Fprintln(stderr, "Erreur:", err)
		return 1
	}
	logger := bootstrap.NewLogger(cfg, "pb2-launcher")
	log.Logger = logger

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	launcher, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		if errors.Is(err, platform.ErrUnsupportedPlatform) {
			fmt.Fprintln(stderr, "Plateforme non supportée:", err)
		} else {
			fmt.Fprintln(stderr, "Erreur:", err)
		}
		return 1
	}
	defer launcher.Close()

	switch args[0] {
	case "login":
		if len(args) != 3 {
			fmt.Fprintln(stderr, usage)
			return 2
		}
		return runLogin(ctx, launcher, domain.Credentials{Username: args[1], Password: args[2]}, stdout, stderr)
	case "update":
		return runUpdate(ctx, launcher, stdout, stderr)
	case "status":
		status, err := launcher.Update.Check(ctx)
		if err != nil {
			return fail(stderr, err)
		}
		printJSON(stdout, map[string]any{"platform": launcher.Target.String(), "assets": status, "session": launcher.Session.Snapshot()})
	case "play":
		pid, err := launcher.Launch.Play(ctx)
		if err != nil {
			return fail(stderr, err)
		}
		fmt.Fprintln(stdout, "pid", pid)
	case "news":
		page := 0
		if len(args) > 1 {
			if page, err = strconv.Atoi(args[1]); err != nil || page < 0 {
				fmt.Fprintln(stderr, "Page invalide:", args[1])
				return 2
			}
		}
		out, err := launcher.News.Page(ctx, page)
		if err != nil {
			return fail(stderr, err)
		}
		printJSON(stdout, out)
	default:
		fmt.Fprintln(stderr, "Commande inconnue:", args[0])
		return 2
	}
	return 0
}

func runLogin(ctx context.Context, l *bootstrap.Launcher, creds domain.Credentials, stdout, stderr io.Writer) int {
	id := l.Dispatcher.Submit(creds)
	res, err := l.Dispatcher.Await(ctx, id)
	if err != nil {
		return fail(stderr, err)
	}
	if res.Err != nil {
		return fail(stderr, res.Err)
	}
	fmt.Fprintln(stdout, res.Outcome.RawMessage)
	if !res.Outcome.Succeeded {
		return 1
	}
	return 0
}

func runUpdate(ctx context.Context, l *bootstrap.Launcher, stdout, stderr io.Writer) int {
	results := l.Update.Start(ctx).Wait()
	if len(results) == 0 {
		fmt.Fprintln(stdout, "Tout est à jour.")
		return 0
	}
	failed := 0
	for _, r := range results {
		if r.OK() {
			fmt.Fprintf(stdout, "%-7s %s (%s)\n", r.Name, r.Path, humanize.Bytes(uint64(r.Bytes)))
			continue
		}
		failed++
		fmt.Fprintf(stderr, "%-7s échec: %v\n", r.Name, r.Err)
	}
	if failed > 0 {
		return 1
	}
	return 0
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "Erreur (%s): %v\n", app.ErrorCode(err), err)
	return 1
}

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
