package subcmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Exotik850/ollama-file-find/impl/config"
	"github.com/Exotik850/ollama-file-find/impl/globals"
	"github.com/Exotik850/ollama-file-find/impl/metrics"
	"github.com/Exotik850/ollama-file-find/impl/scan"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

const startupBanner = `----------------------------------------------------------------------
Ollama model inventory: read-only model and blob inventory server
Version: %s, build date: %s
Started: %s (port %d)
Models directory: %s
Process id: %d
Command line: %v
----------------------------------------------------------------------
`

// listener will be initialized with the Echo listener once the Echo server
// is started.
var listener net.Listener

// shutdownCh stops the server when signaled by the /cmd/stop endpoint.
var shutdownCh = make(chan bool)

// Serve runs the model inventory server, blocking until stopped with CTRL-C
// or via the command REST API.
func Serve(buildVer string, buildDtm string) error {
	if config.GetConfigFile() != "" {
		stopWatching, err := config.WatchConfigFile(config.GetConfigFile())
		if err != nil {
			return fmt.Errorf("error watching the configuration file: %s", err)
		}
		defer stopWatching()
	}
	metrics.InitMetrics(int(config.GetServeConfig().MetricsPort))

	// Echo router
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(globals.GetEchoLoggingFunc())

	e.GET("/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/v1/models", listModels)
	e.GET("/cmd/stop", func(c echo.Context) error {
		go func() { shutdownCh <- true }()
		return c.NoContent(http.StatusOK)
	})

	modelsDir := config.ResolveModelsDir(config.GetModelsDir())
	fmt.Fprintf(os.Stderr, startupBanner, buildVer, buildDtm, time.Unix(0, time.Now().UnixNano()),
		config.GetServeConfig().Port, modelsDir, os.Getpid(), strings.Join(os.Args, " "))

	// start the API server
	go func() {
		addr := net.JoinHostPort("0.0.0.0", strconv.Itoa(int(config.GetServeConfig().Port)))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server. error:", err)
		}
	}()
	if err := waitForEchoListener(e); err != nil {
		return errors.New("timed out waiting for Echo listener")
	}
	listener = e.Listener
	log.Info("server is running")

	<-shutdownCh
	log.Infof("received stop command - stopping")
	e.Server.Shutdown(context.Background())
	log.Infof("stopped")
	return nil
}

// listModels runs a scan of the models directory and returns the inventory as
// JSON. The configured scan options can be widened (never narrowed) per
// request with the 'verbose', 'blob_paths', and 'include_hidden' query params.
func listModels(c echo.Context) error {
	scanCfg := config.GetScanConfig()
	modelsDir := config.ResolveModelsDir(config.GetModelsDir())
	opts := scan.Opts{
		Root:          filepath.Join(modelsDir, globals.ManifestsDir),
		BlobsRoot:     filepath.Join(modelsDir, globals.BlobsDir),
		IncludeHidden: scanCfg.IncludeHidden || queryBool(c, "include_hidden"),
		Verbose:       scanCfg.Verbose || queryBool(c, "verbose"),
		BlobPaths:     scanCfg.BlobPaths || queryBool(c, "blob_paths"),
	}
	start := time.Now()
	metrics.IncScans()
	models, err := scan.Scan(opts)
	if err != nil {
		metrics.IncScanErrors()
		log.Errorf("scan failed: %s", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	metrics.ObserveScanDuration(time.Since(start).Seconds())
	metrics.AddModelsListed(float64(len(models)))
	return c.JSON(http.StatusOK, models)
}

// queryBool interprets the named query param as a bool, treating absent or
// malformed values as false.
func queryBool(c echo.Context, name string) bool {
	val, err := strconv.ParseBool(c.QueryParam(name))
	return err == nil && val
}

// waitForEchoListener waits for the Listener in the Echo server to be initialized. This
// is only used in unit testing so that the unit tests can start the server on ":0" and let
// the http package assign a random port number. Supports unit testing.
func waitForEchoListener(e *echo.Echo) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if e.Listener != nil {
				return nil
			}
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// GetListener supports unit testing.
func GetListener() net.Listener {
	return listener
}

// InitListener supports unit testing.
func InitListener() {
	listener = nil
}
