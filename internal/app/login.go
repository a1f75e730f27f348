package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/ports"
)

var ErrNoStrategy = errors.New("no login strategy configured")

// LoginService enchaîne les stratégies de login dans l'ordre.
//
// Le résultat de la première stratégie sert de référence; il n'est remplacé
// que par le premier résultat réussi d'une stratégie suivante. Une erreur
// transport interrompt la chaîne et remonte telle quelle.
type LoginService struct {
	logger     zerolog.Logger
	strategies []ports.LoginStrategy
	store      ports.CredentialStore
}

func NewLoginService(logger zerolog.Logger, store ports.CredentialStore, strategies ...ports.LoginStrategy) *LoginService {
	return &LoginService{logger: logger, strategies: strategies, store: store}
}

func (s *LoginService) Login(ctx context.Context, creds domain.Credentials) (domain.LoginOutcome, error) {
	if len(s.strategies) == 0 {
		return domain.LoginOutcome{}, ErrNoStrategy
	}
	var outcome domain.LoginOutcome
	for i, strategy := range s.strategies {
		got, err := strategy.Attempt(ctx, creds)
		if err != nil {
			s.logger.Warn().Err(err).Str("strategy", strategy.Name()).Str("user", creds.Username).Msg("login request failed")
			return domain.LoginOutcome{}, err
		}
		s.logger.Debug().Str("strategy", strategy.Name()).Bool("succeeded", got.Succeeded).Msg("login strategy answered")
		if i == 0 || got.Succeeded {
			outcome = got
		}
		if outcome.Succeeded {
			break
		}
	}

	// Le préfixe reste le seul critère, quelle que soit la stratégie.
	outcome.Succeeded = domain.IsWelcome(outcome.RawMessage)
	if !outcome.Succeeded {
		s.logger.Info().Str("user", creds.Username).Msg("login rejected")
		return outcome, nil
	}

	s.logger.Info().Str("user", creds.Username).Str("method", string(outcome.Method)).Msg("signed in")
	if s.store != nil {
		if err := s.store.Save(ctx, creds); err != nil {
			s.logger.Error().Err(err).Str("code", ErrorCode(err)).Msg("failed to write auth file")
		}
	}
	return outcome, nil
}
