// @title EstoqueTI API
// @version 1.0
// @description Almoxarifado de TI: catálogo de materiais, entradas de estoque e solicitações de retirada.
// @BasePath /v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"estoqueti/config"
	_ "estoqueti/docs" // Registra a especificação Swagger
	"estoqueti/internal/app"
	"estoqueti/internal/pkg/cache"
	"estoqueti/internal/pkg/logger"
)

func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço EstoqueTI...")
	if err := godotenv.Load(); err != nil {
		// As variáveis podem vir do ambiente do sistema (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	// 2. Cache: Redis quando configurado, memória caso contrário
	var cacheClient cache.Client
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.CacheTimeout)
		if err != nil {
			log.Fatal("Falha ao conectar ao Redis.", err)
		}
		defer redisClient.Close()
		cacheClient = redisClient
		log.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
	} else {
		cacheClient = cache.NewMemoryClient()
		log.Warn("REDIS_ADDR não definido. Usando cache em memória.", nil)
	}

	// 3. Injeção de dependências
	application, err := app.New(cfg, log, cacheClient)
	if err != nil {
		log.Fatal("Falha ao montar a aplicação.", err)
	}

	// WriteTimeout fica zerado: conexões WebSocket do feed de eventos são longas.
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           application.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// 4. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor EstoqueTI ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	application.Hub.Close()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
	if zl, ok := log.(interface{ Sync() error }); ok {
		_ = zl.Sync()
	}
}
