package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sunnykeerthi/service-center-user/configs"
	"github.com/sunnykeerthi/service-center-user/configs/loader/dotEnvLoader"
	"github.com/sunnykeerthi/service-center-user/internal/delivery/alexa"
	"github.com/sunnykeerthi/service-center-user/internal/repository/cachedRepo"
	"github.com/sunnykeerthi/service-center-user/internal/repository/redisCache"
	"github.com/sunnykeerthi/service-center-user/internal/repository/salesforce"
	"github.com/sunnykeerthi/service-center-user/internal/usecase"
	"github.com/sunnykeerthi/service-center-user/pkg/logger"
	"github.com/sunnykeerthi/service-center-user/pkg/prometheus"
)

func main() {

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	loader := dotEnvLoader.DotEnvLoader{}
	cfg := configs.MustLoad(loader)
	log := logger.NewLogger(cfg)

	prometheus.Init()

	repo := salesforce.NewRepo(cfg, log)

	var identityProvider usecase.IdentityProvider = repo
	cache, err := redisCache.NewCache(context.Background(), cfg)
	if err != nil {
		log.Warn("identity cache unavailable, resolving identities directly", "error", err)
	} else {
		defer cache.Close()
		identityProvider = cachedRepo.NewCachedRepo(repo, cache, log)
	}

	caseService := usecase.NewCase(repo)
	identityService := usecase.NewIdentity(identityProvider)

	skill := alexa.NewSkill(caseService, identityService, cfg.Skill.ServiceCenter, log)
	server := alexa.NewServer(cfg, skill, log)

	log.Info("Starting skill endpoint", "addr", cfg.HTTP.Addr)
	go func() {
		if err := server.Run(); err != nil {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	log.Info("Shutting down skill")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
	log.Info("Service stopped")
}
