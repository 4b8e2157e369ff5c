package main

import (
	"bufio"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pjm714059-code/baro-toss-test/internal/app"
	"github.com/pjm714059-code/baro-toss-test/internal/clock"
	"github.com/pjm714059-code/baro-toss-test/internal/metrics"
	"github.com/pjm714059-code/baro-toss-test/internal/storage/memory"
	"github.com/pjm714059-code/baro-toss-test/internal/token"
	"github.com/pjm714059-code/baro-toss-test/internal/toss"
	transporthttp "github.com/pjm714059-code/baro-toss-test/internal/transport/http"
)

const defaultPort = "8080"
const defaultMaxAmount = int64(1_000_000)
const defaultOrderTTL = 10 * time.Minute
const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.Default()
	loadEnvFile(logger)

	port := os.Getenv("PORT")
	if port == "" {
		logger.Printf("WARN: PORT not set, using default %s", defaultPort)
		port = defaultPort
	}

	tossSecret := os.Getenv("TOSS_SECRET_KEY")
	if tossSecret == "" {
		log.Fatal("TOSS_SECRET_KEY is required")
	}

	signingSecret := os.Getenv("ORDER_SIGNING_SECRET")
	if signingSecret == "" {
		// Policy default, not a requirement: one compromised key then
		// breaks both signing and processor auth.
		logger.Printf("WARN: ORDER_SIGNING_SECRET not set, falling back to TOSS_SECRET_KEY (reduced key isolation)")
		signingSecret = tossSecret
	}

	maxAmount := envInt64(logger, "MAX_AMOUNT", defaultMaxAmount)
	orderTTL := time.Duration(envInt64(logger, "ORDER_TTL_MS", defaultOrderTTL.Milliseconds())) * time.Millisecond

	corsOrigins := parseCSV(os.Getenv("CORS_ORIGINS"))

	tossOpts := []toss.Option{}
	if confirmURL := os.Getenv("TOSS_CONFIRM_URL"); confirmURL != "" {
		logger.Printf("WARN: TOSS_CONFIRM_URL overridden to %s", confirmURL)
		tossOpts = append(tossOpts, toss.WithConfirmURL(confirmURL))
	}

	signer := token.NewSigner(signingSecret)
	store := memory.NewOrderStore(orderTTL)
	clk := clock.NewSystem()
	orderSvc := app.NewOrderService(store, signer, clk,
		app.WithMaxAmount(maxAmount),
		app.WithOrderTTL(orderTTL),
	)
	confirmSvc := app.NewConfirmService(store, signer, clk, toss.NewClient(tossSecret, tossOpts...))

	srvMetrics := metrics.NewServerMetrics("api")

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/metrics", srvMetrics.Handler())
	mux.Handle("/create-order", transporthttp.HandleCreateOrder(orderSvc))
	mux.Handle("/confirm", transporthttp.HandleConfirm(confirmSvc))
	mux.Handle("/success", transporthttp.SuccessPage())
	mux.Handle("/fail", transporthttp.FailPage())
	mux.Handle("/", transporthttp.CheckoutPage())

	handler := transporthttp.RequestLogger(transporthttp.CORS(corsOrigins, mux), logger, srvMetrics)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("api listening on :%s (max amount %d, order ttl %s)", port, maxAmount, orderTTL)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}

func envInt64(logger *log.Logger, key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		logger.Printf("WARN: %s not set, using default %d", key, fallback)
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		logger.Printf("WARN: %s=%q is not a positive integer, using default %d", key, raw, fallback)
		return fallback
	}
	return v
}

func parseCSV(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func loadEnvFile(logger *log.Logger) {
	path, err := findEnvFile()
	if err != nil {
		logger.Printf("WARN: failed to locate .env: %v", err)
		return
	}
	if path == "" {
		return
	}

	file, err := os.Open(path)
	if err != nil {
		logger.Printf("WARN: failed to open %s: %v", path, err)
		return
	}
	if err := parseEnvFile(logger, file); err != nil {
		logger.Printf("WARN: failed to load %s: %v", path, err)
	} else {
		logger.Printf("loaded env from %s", path)
	}
	_ = file.Close()
}

func findEnvFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for i := 0; i < 6; i++ {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", nil
}

func parseEnvFile(logger *log.Logger, file *os.File) error {
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			continue
		}
		value = trimQuotes(value)
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			logger.Printf("WARN: failed to set %s from env file", key)
		}
	}
	return scanner.Err()
}

func trimQuotes(value string) string {
	if len(value) < 2 {
		return value
	}
	if (value[0] == '"' && value[len(value)-1] == '"') ||
		(value[0] == '\'' && value[len(value)-1] == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}
