package alexa

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sunnykeerthi/service-center-user/configs"
	"github.com/sunnykeerthi/service-center-user/internal/domain"
)

type Server struct {
	skill *Skill
	appID string
	srv   *http.Server
	log   *slog.Logger
}

func NewServer(cfg *configs.Config, skill *Skill, log *slog.Logger) *Server {
	s := &Server{
		skill: skill,
		appID: cfg.Skill.AppID,
		log:   log,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/alexa", s.handleRequest)

	s.srv = &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
	return s
}

func (s *Server) Run() error {
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	var env RequestEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		s.log.Warn("malformed request envelope", errorKey, err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if s.appID != "" && env.Session.Application.ApplicationID != s.appID {
		s.log.Warn("rejected request",
			errorKey, domain.ErrApplicationMismatch,
			"application_id", env.Session.Application.ApplicationID)
		http.Error(w, domain.ErrApplicationMismatch.Error(), http.StatusBadRequest)
		return
	}

	correlationID := env.Request.RequestID
	if correlationID == "" {
		correlationID = uuid.New().String()
	}
	ctx := context.WithValue(r.Context(), correlationIDKey, correlationID)

	state, err := domain.StateFromAttributes(env.Session.Attributes)
	if err != nil {
		// a corrupt bag should not kill the turn; start the conversation clean
		s.log.ErrorContext(ctx, "corrupt session attributes",
			sessionIDKey, env.Session.SessionID,
			errorKey, err,
			correlationIDKey, correlationID)
		state = &domain.SessionState{}
	}

	t := &turn{
		token: env.Session.User.AccessToken,
		state: state,
		slots: env.Request.slotValues(),
	}

	var resp *Response
	switch env.Request.Type {
	case requestTypeLaunch:
		s.log.InfoContext(ctx, "session launched",
			sessionIDKey, env.Session.SessionID,
			correlationIDKey, correlationID)
		resp = s.skill.Dispatch(ctx, requestTypeLaunch, t)

	case requestTypeIntent:
		s.log.InfoContext(ctx, "intent received",
			sessionIDKey, env.Session.SessionID,
			intentKey, env.Request.Intent.Name,
			correlationIDKey, correlationID)
		resp = s.skill.Dispatch(ctx, env.Request.Intent.Name, t)

	case requestTypeSessionEnded:
		s.log.InfoContext(ctx, "session ended by platform",
			sessionIDKey, env.Session.SessionID,
			"reason", env.Request.Reason,
			correlationIDKey, correlationID)
		s.writeEnvelope(ctx, w, ResponseEnvelope{Version: responseVersion})
		return

	default:
		s.log.Warn("unsupported request type", "type", env.Request.Type)
		http.Error(w, "unsupported request type", http.StatusBadRequest)
		return
	}

	s.writeEnvelope(ctx, w, resp.Build(t.state))
}

func (s *Server) writeEnvelope(ctx context.Context, w http.ResponseWriter, env ResponseEnvelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(env); err != nil {
		s.log.ErrorContext(ctx, "failed to write response", errorKey, err)
	}
}
