package main

import (
	"net/http"
	"time"

	"github.com/gustavocaixetarosa/cp/internal/auth"
	"github.com/gustavocaixetarosa/cp/internal/boleto"
	"github.com/gustavocaixetarosa/cp/internal/cliente"
	"github.com/gustavocaixetarosa/cp/internal/config"
	"github.com/gustavocaixetarosa/cp/internal/grupopagamento"
	"github.com/gustavocaixetarosa/cp/internal/integrations/inter"
	"github.com/gustavocaixetarosa/cp/internal/pagamento"
	"github.com/gustavocaixetarosa/cp/internal/scheduled"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// Variáveis locais de desenvolvimento; em produção vêm do ambiente.
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Erro ao carregar configuração: %v", err)
	}
	if nivel, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(nivel)
	}

	auth.ConfigurarSegredo(cfg.JWTSecret)

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Error),
		TranslateError: true,
	})
	if err != nil {
		logger.Fatalf("Erro ao conectar no banco: %v", err)
	}

	for _, migrate := range []func(*gorm.DB) error{
		cliente.Migrate,
		grupopagamento.Migrate,
		pagamento.Migrate,
		boleto.Migrate,
	} {
		if err := migrate(db); err != nil {
			logger.Fatalf("Erro no AutoMigrate: %v", err)
		}
	}

	// Estratégias de emissão. O mock é registrado por último de propósito:
	// no registro, a última estratégia de cada banco vence.
	estrategias := []boleto.Estrategia{}
	interClient := inter.NewClient(inter.Config{
		APIURL:         cfg.InterAPIURL,
		OAuthURL:       cfg.InterOAuthURL,
		ClientID:       cfg.InterClientID,
		ClientSecret:   cfg.InterClientSecret,
		Escopos:        cfg.InterEscopos,
		TimeoutConexao: cfg.InterTimeoutConexao,
		TimeoutLeitura: cfg.InterTimeoutLeitura,
	}, logger)
	estrategias = append(estrategias, boleto.NewEstrategiaInter(interClient, logger))
	if cfg.BancoMockHabilitado {
		logger.Warn("Mock de banco habilitado: boletos NÃO serão emitidos de verdade")
		estrategias = append(estrategias, boleto.NewEstrategiaMock(logger))
	}
	registro := boleto.NovoRegistro(estrategias...)

	// Handlers
	authHandler := auth.NewHandler(cfg, logger)
	clienteHandler := cliente.NewHandler(db)
	grupoHandler := grupopagamento.NewHandler(db)
	pagamentoHandler := pagamento.NewHandler(db)
	boletoService := boleto.NewService(db, registro, logger)
	boletoHandler := boleto.NewHandler(boletoService)

	// Router
	r := mux.NewRouter()
	r.HandleFunc("/v1/auth/login", authHandler.Login).Methods("POST")

	protegido := r.PathPrefix("/v1").Subrouter()
	protegido.Use(auth.MiddlewareAutenticacao)
	protegido.HandleFunc("/auth/validate", authHandler.Validar).Methods("GET")

	protegido.HandleFunc("/clientes", clienteHandler.CriarCliente).Methods("POST")
	protegido.HandleFunc("/clientes", clienteHandler.ListarClientes).Methods("GET")
	protegido.HandleFunc("/clientes/{id}", clienteHandler.BuscarPorID).Methods("GET")
	protegido.HandleFunc("/clientes/{id}", clienteHandler.AtualizarCliente).Methods("PUT")
	protegido.HandleFunc("/clientes/{id}", clienteHandler.DeletarCliente).Methods("DELETE")

	protegido.HandleFunc("/grupos-pagamento", grupoHandler.CriarGrupo).Methods("POST")
	protegido.HandleFunc("/grupos-pagamento", grupoHandler.ListarGrupos).Methods("GET")
	protegido.HandleFunc("/grupos-pagamento/{id}", grupoHandler.BuscarPorID).Methods("GET")
	protegido.HandleFunc("/grupos-pagamento/{id}", grupoHandler.DeletarGrupo).Methods("DELETE")

	protegido.HandleFunc("/pagamentos", pagamentoHandler.ListarPagamentos).Methods("GET")
	protegido.HandleFunc("/pagamentos/agrupados", pagamentoHandler.ListarAgrupados).Methods("GET")
	protegido.HandleFunc("/pagamentos/{id}", pagamentoHandler.AtualizarPagamento).Methods("PUT")
	protegido.HandleFunc("/pagamentos/{id}/pagar", pagamentoHandler.MarcarComoPago).Methods("POST")

	protegido.HandleFunc("/boletos/pagamento/{id}", boletoHandler.BuscarPorPagamento).Methods("GET")
	protegido.HandleFunc("/boletos/pagamento/{id}/gerar", boletoHandler.GerarBoleto).Methods("POST")
	protegido.HandleFunc("/boletos/pagamento/{id}/reprocessar", boletoHandler.ReprocessarBoleto).Methods("POST")

	// Rotinas diárias: status antes do recálculo de valores, sempre.
	jobs := scheduled.NewJobs(db, logger)
	localidade, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		logger.Fatalf("Erro ao carregar fuso horário: %v", err)
	}
	agendador := cron.New(cron.WithLocation(localidade))
	if _, err := agendador.AddFunc("0 2 * * *", func() {
		if _, err := jobs.AtualizarStatus(); err != nil {
			logger.Errorf("Rotina de status falhou: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Erro ao agendar rotina de status: %v", err)
	}
	if _, err := agendador.AddFunc("30 2 * * *", func() {
		if _, err := jobs.AtualizarValoresVencidos(); err != nil {
			logger.Errorf("Rotina de valores em atraso falhou: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Erro ao agendar rotina de valores: %v", err)
	}
	agendador.Start()
	defer agendador.Stop()

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	server := &http.Server{
		Addr:         ":" + cfg.Porta,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	logger.Infof("Servidor rodando na porta %s", cfg.Porta)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Servidor encerrou com erro: %v", err)
	}
}
