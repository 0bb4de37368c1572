package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/shell"
)

var errInvalidParameter = errors.New("invalid parameter")

// Server routes HTTP requests to the feature handlers.
type Server struct {
	handlers Handlers
	now      func() time.Time
	logger   shell.Logger
}

type Option func(*Server)

// WithClock replaces time.Now as the source of command and query timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger logs one line per request at info level.
func WithLogger(logger shell.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

func NewServer(handlers Handlers, options ...Option) *Server {
	s := &Server{
		handlers: handlers,
		now:      time.Now,
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// Router returns the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLog)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", s.registerAccount)

		r.Route("/{accountID}", func(r chi.Router) {
			r.Post("/steps", s.recordDailySteps)
			r.Get("/wallet", s.walletBalance)
			r.Get("/squad", s.activeSquad)

			r.Get("/friends", s.friendList)
			r.Post("/friends", s.addFriend)
			r.Delete("/friends/{friendID}", s.removeFriend)

			r.Get("/redemptions", s.listRedemptions)
			r.Post("/redemptions", s.redeemOffer)
			r.Get("/redemptions/check", s.validateRedemption)
			r.Post("/redemptions/{redemptionID}/use", s.markRedemptionUsed)
		})
	})

	r.Route("/squads", func(r chi.Router) {
		r.Post("/", s.createSquad)

		r.Route("/{squadID}", func(r chi.Router) {
			r.Post("/accept", s.acceptInvitation)
			r.Post("/decline", s.declineInvitation)
			r.Post("/cancel", s.cancelSquad)
			r.Post("/contributions", s.contributeSteps)
			r.Get("/redemption/check", s.validateGroupRedemption)
			r.Post("/redemption", s.redeemSquadReward)
		})
	})

	r.Route("/challenges/{challengeID}", func(r chi.Router) {
		r.Get("/", s.challengeProgress)
		r.Post("/participants", s.joinChallenge)
		r.Post("/progress", s.recordChallengeProgress)
	})

	r.Get("/leagues/{period}", s.leagueStandings)

	return r
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.logger == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", shell.ToMilliseconds(time.Since(start)),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidParameter
	}

	return value, nil
}
