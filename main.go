package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"LOJA_PIX_GO/config"
	"LOJA_PIX_GO/database"
	"LOJA_PIX_GO/payments"
	"LOJA_PIX_GO/pix"
	"LOJA_PIX_GO/routes"
)

func main() {
	// Carregar configuração
	config.LoadEnv()

	logger, err := config.NewLogger(config.GetLogLevel())
	if err != nil {
		log.Fatalf("Erro ao criar logger: %v", err)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("servidor encerrado com erro", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	dbURL, err := config.GetDatabaseURL()
	if err != nil {
		return err
	}
	secret, err := config.GetJwtSecret()
	if err != nil {
		return err
	}
	pixCfg, err := config.GetPixConfig()
	if err != nil {
		return err
	}
	generator, err := pix.NewGenerator(pixCfg)
	if err != nil {
		return err
	}

	// Conectar ao banco de dados
	db, err := database.Connect(dbURL)
	if err != nil {
		return err
	}
	defer db.Close()

	// Executar migrações
	if err := database.RunMigrations(db); err != nil {
		return err
	}
	logger.Info("migrações executadas com sucesso")

	deps := routes.PostgresDeps(db)
	deps.Pix = generator
	deps.JwtSecret = secret
	deps.CorsOrigin = config.GetCorsOrigin()
	deps.Logger = logger

	if config.EfiEnabled() {
		efi := payments.NewEfiClient(config.GetCredentials(), config.GetEfiPixKey())
		deps.Efi = efi
		deps.Watcher = payments.NewMonitor(efi, database.NewOrderStore(db), logger, payments.DefaultPhases)
		logger.Info("cobranças dinâmicas Efí habilitadas")
	}

	// Configurar as rotas
	srv := &http.Server{
		Addr:              ":" + config.GetPortServerStart(),
		Handler:           routes.Handler(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("servidor rodando", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		logger.Info("encerrando servidor")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
