package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	"github.com/utilfix/go_class_repair/pkg/repair"
	"github.com/utilfix/go_class_repair/pkg/streaming"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means use GOMAXPROCS
)

var (
	// Whole-text repairer
	classRepair *repair.ClassRepair

	// Scoped repairer confining generic fallbacks to class attributes
	scopedRepair *repair.ClassRepair

	// Streaming repairer for large bodies
	streamingRepair *streaming.StreamingRepair

	// Logger instance
	logger l.Logger
)

// Request represents a repair request
type Request struct {
	Text   string `json:"text"`
	Scoped bool   `json:"scoped,omitempty"`
}

// Response represents a repair response
type Response struct {
	Output       string                 `json:"output"`
	Changed      bool                   `json:"changed"`
	Replacements int                    `json:"replacements"`
	OriginalSize int                    `json:"original_size"`
	RepairedSize int                    `json:"repaired_size"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	// Parse command-line flags
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	warmUp := flag.Bool("warm-up", true, "Perform warm-up on startup")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	// Set up logger
	var err error
	logger, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting class repair HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
	)

	// Initialize repairers
	initRepairers(*warmUp)

	// Create HTTP server with fasthttp
	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
		Logger:                nil, // we'll handle logging ourselves
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	// Start server
	logger.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		logger.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// createLogger builds the server logger, writing to logFile when set.
func createLogger(logFile string) (l.Logger, error) {
	output := os.Stdout
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		output = f
	}
	return l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  logFile != "",
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,
		MaxFileSize: 10 * 1024 * 1024,
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
}

// initRepairers initializes the repairers shared by all requests
func initRepairers(warmUp bool) {
	var err error

	opts := []repair.Option{
		repair.WithLogger(logger),
	}
	if warmUp {
		opts = append(opts, repair.WithWarmUp(true))
	}
	classRepair, err = repair.New(opts...)
	if err != nil {
		logger.Error("Failed to initialize repairer", "error", err)
		os.Exit(1)
	}

	scopedOpts := append([]repair.Option{repair.WithScopedFallback()}, opts...)
	scopedRepair, err = repair.New(scopedOpts...)
	if err != nil {
		logger.Error("Failed to initialize scoped repairer", "error", err)
		os.Exit(1)
	}

	streamingRepair, err = streaming.New(streaming.WithLogger(logger))
	if err != nil {
		logger.Error("Failed to initialize streaming repairer", "error", err)
		os.Exit(1)
	}

	logger.Info("Repairers initialized successfully",
		"warm_up", warmUp,
		"cpus", runtime.NumCPU(),
	)
}

// requestHandler is the main fasthttp request handler
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Server", "ClassRepairServer")

	switch string(ctx.Path()) {
	case "/health":
		handleHealthCheck(ctx)
	case "/repair":
		handleRepair(ctx)
	case "/repair/stream":
		handleStreamRepair(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	duration := time.Since(startTime)
	logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", duration,
	)
}

// handleHealthCheck responds to health check requests
func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleRepair repairs the text of a JSON request body
func handleRepair(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req Request
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if req.Text == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Text is required")
		return
	}

	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repairer := classRepair
	if req.Scoped {
		repairer = scopedRepair
	}
	result := repairer.Repair(c, req.Text)

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, Response{
		Output:       result.Output,
		Changed:      result.Changed,
		Replacements: result.Replacements,
		OriginalSize: result.OriginalSize,
		RepairedSize: result.RepairedSize,
		Details:      result.Details,
	})
}

// handleStreamRepair repairs a raw text body line by line
func handleStreamRepair(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	body := ctx.PostBody()
	if len(body) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Request body is required")
		return
	}

	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var out bytes.Buffer
	out.Grow(len(body))
	res, err := streamingRepair.RepairStream(c, bytes.NewReader(body), &out)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		writeJSONError(ctx, "Stream repair failed: "+err.Error())
		return
	}

	ctx.Response.Header.Set("Content-Type", "text/plain; charset=utf-8")
	ctx.Response.Header.Set("X-Changed", fmt.Sprintf("%t", res.Changed))
	ctx.Response.Header.Set("X-Replacements", fmt.Sprintf("%d", res.Replacements))
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(out.Bytes())
}

// writeJSONResponse marshals and writes a JSON response
func writeJSONResponse(ctx *fasthttp.RequestCtx, v interface{}) {
	ctx.Response.Header.Set("Content-Type", "application/json")
	data, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"error":"failed to encode response"}`)
		return
	}
	ctx.SetBody(data)
}

// writeJSONError writes a JSON error response
func writeJSONError(ctx *fasthttp.RequestCtx, msg string) {
	ctx.Response.Header.Set("Content-Type", "application/json")
	data, _ := json.Marshal(ErrorResponse{Error: msg})
	ctx.SetBody(data)
}
