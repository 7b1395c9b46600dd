package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"strconv"

	"nodecast/agent"
	"nodecast/archive"
)

func main() {
	// Environment variables provide defaults; flags override.
	envPromURL := envString("PROMETHEUS_URL", "http://prometheus-kube-prometheus-prometheus.monitoring.svc:9090")
	envLookback := envInt("LOOKBACK_MINUTES", 120)
	envHorizon := envInt("FORECAST_MINUTES", 30)
	envCPUQuery := envString("CPU_QUERY", "k8s_node_cpu_usage_cores")
	envMemQuery := envString("MEM_QUERY", "k8s_node_memory_usage_bytes")
	envNoModel := envBool("DISABLE_TREND_MODEL", false)

	promURL := flag.String("prom-url", envPromURL, "Prometheus base URL")
	lookback := flag.Int("lookback", envLookback, "Lookback window in minutes")
	horizon := flag.Int("horizon", envHorizon, "Forecast horizon in minutes")
	cpuQuery := flag.String("cpu-query", envCPUQuery, "PromQL expression for per-node CPU usage (cores)")
	memQuery := flag.String("mem-query", envMemQuery, "PromQL expression for per-node memory usage (bytes)")
	noModel := flag.Bool("no-model", envNoModel, "Disable the trend model and use historical statistics only")
	flag.Parse()

	cfg := agent.Config{
		PromURL:         *promURL,
		LookbackMinutes: *lookback,
		HorizonMinutes:  *horizon,
		CPUQuery:        *cpuQuery,
		MemQuery:        *memQuery,
		DisableModel:    *noModel,
	}

	if bucket := os.Getenv("REPORT_S3_BUCKET"); bucket != "" {
		cfg.Archive = &archive.Config{
			Endpoint:        os.Getenv("REPORT_S3_ENDPOINT"),
			Region:          os.Getenv("REPORT_S3_REGION"),
			Bucket:          bucket,
			Prefix:          os.Getenv("REPORT_S3_PREFIX"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		}
	}

	err := agent.Run(context.Background(), cfg, os.Stdout)
	if err != nil {
		if errors.Is(err, agent.ErrNoMetrics) || errors.Is(err, agent.ErrNoNodes) {
			os.Exit(1)
		}
		log.Fatalf("Run failed: %v", err)
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}
