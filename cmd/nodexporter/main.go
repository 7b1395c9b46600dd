package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"nodecast/exporter"
)

var (
	listenAddr     string
	scrapeInterval time.Duration
	local          bool
	enableKubelet  bool
	enableCadvisor bool
	excludePhases  []string
)

var rootCmd = &cobra.Command{
	Use:   "nodexporter",
	Short: "nodexporter exposes per-node CPU and memory usage for the nodecast agent",
	Run:   runExporter,
}

func init() {
	rootCmd.Flags().StringVarP(&listenAddr, "listen-address", "l", ":9100", "HTTP listen address")
	rootCmd.Flags().DurationVarP(&scrapeInterval, "scrape-interval", "i", 30*time.Second, "Scrape interval")
	rootCmd.Flags().BoolVar(&local, "local", false, "Sample the local host instead of a cluster")
	rootCmd.Flags().BoolVar(&enableKubelet, "enable-kubelet", true, "Scrape kubelet metrics via API server proxy")
	rootCmd.Flags().BoolVar(&enableCadvisor, "enable-cadvisor", true, "Scrape cAdvisor metrics via API server proxy")
	rootCmd.Flags().StringSliceVar(&excludePhases, "exclude-phases", []string{"Succeeded", "Failed"}, "Pod phases to exclude from aggregation")
}

func runExporter(cmd *cobra.Command, args []string) {
	registry := prometheus.NewRegistry()
	exp, err := exporter.New(exporter.Config{
		ScrapeInterval: scrapeInterval,
		EnableKubelet:  enableKubelet,
		EnableCadvisor: enableCadvisor,
		ExcludePhases:  excludePhases,
		Local:          local,
	}, registry)
	if err != nil {
		log.Fatalf("Failed to create exporter: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go exp.Run(ctx)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: listenAddr, Handler: mux}

	go func() {
		log.Printf("Starting exporter on %s (local=%v kubelet=%v cadvisor=%v)", listenAddr, local, enableKubelet, enableCadvisor)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("Received signal %v, shutting down", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
