package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/config"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/api/handler"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/api/router"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/mailer"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/repository"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/internal/service"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/database"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/jwt"
	applogger "github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/logger"
	"github.com/MistralCR/Sistema-de-Utiles-Escolares-New/pkg/redis"
)

func main() {
	// 1. Configuración
	cfg, err := config.Load(os.Getenv("LISTAS_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error al cargar la configuración: %v\n", err)
		os.Exit(1)
	}

	// 2. Logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error al iniciar el logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("iniciando el sistema de listas de útiles",
		zap.Int("puerto", cfg.Server.Port),
		zap.String("nivel_log", cfg.Log.Level),
	)

	// 3. Base de datos
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("no se pudo conectar a la base de datos", zap.Error(err))
	}
	logger.Info("conexión a PostgreSQL establecida")

	// 3.1 Migraciones
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("no se pudo obtener el sql.DB subyacente", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("las migraciones fallaron", zap.Error(err))
	}

	// 4. Redis. Opcional: sin Redis se pierde la lista negra de tokens y
	// el límite de intentos, pero el sistema arranca.
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis no disponible, se continúa en modo degradado", zap.Error(err))
		rdb = nil
	}

	// 5. Correo: SMTP cuando está configurado, consola en desarrollo
	var mail mailer.Mailer
	if cfg.Mail.SMTPHost != "" {
		mail = mailer.NewSMTP(&cfg.Mail)
		logger.Info("correo saliente por SMTP", zap.String("host", cfg.Mail.SMTPHost))
	} else {
		mail = mailer.NewConsole(logger)
		logger.Warn("SMTP sin configurar, los correos se escriben en el log")
	}

	// 6. Inyección de dependencias: Repository → Service → Handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, mail, logger)
	h := handler.NewHandler(svc)

	// 7. Rutas
	engine := router.Setup(cfg, h, repo, jwtMgr, rdb, logger)

	// 8. Servidor HTTP con apagado ordenado
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("servidor HTTP escuchando", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("el servidor HTTP falló", zap.Error(err))
		}
	}()

	// 9. Señales del sistema
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("señal de apagado recibida", zap.String("señal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("el apagado del servidor falló", zap.Error(err))
	}

	if closeDB, err := db.DB(); err == nil && closeDB != nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("servidor detenido")
}
