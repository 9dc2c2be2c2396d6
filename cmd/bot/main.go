package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"supportbot/internal/api"
	"supportbot/internal/broadcast"
	"supportbot/internal/chats"
	"supportbot/internal/config"
	"supportbot/internal/middleware"
	"supportbot/internal/relay"
	"supportbot/internal/session"
	"supportbot/internal/storage/mongodb"
	"supportbot/pkg/tgbotclient"
)

const workerCount = 3

func main() {
	cfg, err := config.Load()

	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	store, err := mongodb.New(ctx, cfg.MongoURI)

	if err != nil {
		log.Fatal(err)
	}

	err = mongodb.Init(ctx, store)

	if err != nil {
		log.Fatal(err)
	}

	bot, err := tgbotclient.NewTgBotClient(cfg.TelegramToken, cfg.Debug)

	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	sessions := session.NewStore()
	manager := chats.NewManager(store)
	coordinator := broadcast.NewCoordinator(bot)
	engine := relay.NewEngine(store, sessions, manager, coordinator, bot)
	handle := middleware.CurrentUser(store, middleware.BanCheck(bot, engine.Handle))

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: api.NewRouter(api.Deps{
			Storage:       store,
			Token:         cfg.APIToken,
			UploadDir:     cfg.UploadDir,
			AllowedOrigin: cfg.AllowedOrigin,
		}),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updateChan := bot.GetUpdatesChan(u)

	for i := 0; i < workerCount; i++ {
		go func(ctx context.Context) {
			for {
				select {
				case update := <-updateChan:
					if ev, ok := tgbotclient.ToEvent(&update); ok {
						handle(ctx, ev)
					}
				case <-ctx.Done():
					return
				}
			}
		}(ctx)
	}

	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	<-quitChannel

	srv.Shutdown(ctx)
	store.Disconnect(ctx)
	cancel()

	fmt.Println("Adios!")
}
