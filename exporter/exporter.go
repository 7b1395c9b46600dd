// Package exporter aggregates per-node CPU and memory usage and
// exposes it as Prometheus gauges, feeding the series the agent
// queries. It scrapes kubelet or cAdvisor endpoints through the API
// server proxy, or samples the local host when running outside a
// cluster.
package exporter

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Metric names scraped from kubelet/cAdvisor exposition text.
const (
	cpuSourceMetric = "container_cpu_usage_seconds_total"
	memSourceMetric = "container_memory_working_set_bytes"
)

// Config controls what the exporter scrapes and how often.
type Config struct {
	ScrapeInterval time.Duration
	EnableKubelet  bool
	EnableCadvisor bool
	ExcludePhases  []string // pod phases excluded from the active-pod count
	Local          bool     // sample the local host instead of a cluster
}

// Exporter collects node utilization and publishes it as gauges.
type Exporter struct {
	cfg       Config
	restCfg   *rest.Config
	clientset kubernetes.Interface
	client    *http.Client

	cpuUsage     *prometheus.GaugeVec
	memUsage     *prometheus.GaugeVec
	podCount     *prometheus.GaugeVec
	scrapeErrors *prometheus.CounterVec
}

// New creates an exporter and registers its collectors. In cluster
// mode a kube client is built from the in-cluster config or, failing
// that, the local kubeconfig.
func New(cfg Config, reg prometheus.Registerer) (*Exporter, error) {
	if cfg.ScrapeInterval <= 0 {
		cfg.ScrapeInterval = 30 * time.Second
	}

	e := &Exporter{
		cfg: cfg,
		cpuUsage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "k8s_node_cpu_usage_cores",
			Help: "Aggregated CPU usage (cores) per node.",
		}, []string{"node"}),
		memUsage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "k8s_node_memory_usage_bytes",
			Help: "Aggregated memory working set (bytes) per node.",
		}, []string{"node"}),
		podCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "k8s_node_active_pods",
			Help: "Number of non-terminal pods per node.",
		}, []string{"node"}),
		scrapeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nodecast_exporter_scrape_errors_total",
			Help: "Total scrape errors by target.",
		}, []string{"target"}),
	}
	reg.MustRegister(e.cpuUsage, e.memUsage, e.podCount, e.scrapeErrors)

	if !cfg.Local {
		restCfg, err := inClusterOrKubeconfig()
		if err != nil {
			return nil, fmt.Errorf("cannot create kube config: %w", err)
		}
		clientset, err := kubernetes.NewForConfig(restCfg)
		if err != nil {
			return nil, fmt.Errorf("cannot create clientset: %w", err)
		}
		transport, err := rest.TransportFor(restCfg)
		if err != nil {
			return nil, fmt.Errorf("cannot create proxy transport: %w", err)
		}
		e.restCfg = restCfg
		e.clientset = clientset
		e.client = &http.Client{Transport: transport, Timeout: 15 * time.Second}
	}

	return e, nil
}

// Run scrapes on the configured interval until the context is
// canceled. Scrape failures are counted and logged, never fatal.
func (e *Exporter) Run(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.ScrapeInterval)
	defer ticker.Stop()
	for {
		if err := e.collect(ctx); err != nil {
			log.Printf("[Exporter] Scrape error: %v", err)
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (e *Exporter) collect(ctx context.Context) error {
	if e.cfg.Local {
		return e.collectLocal()
	}
	return e.collectCluster(ctx)
}

// collectCluster lists nodes and pods, counts non-terminal pods per
// node, and sums container CPU and memory from each node's metrics
// endpoint via the API server proxy.
func (e *Exporter) collectCluster(ctx context.Context) error {
	nodes, err := e.clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return fmt.Errorf("failed to list nodes: %w", err)
	}
	pods, err := e.clientset.CoreV1().Pods("").List(ctx, metav1.ListOptions{})
	if err != nil {
		return fmt.Errorf("failed to list pods: %w", err)
	}

	excluded := excludedPhases(e.cfg.ExcludePhases)
	counts := make(map[string]float64)
	for _, p := range pods.Items {
		if excluded[p.Status.Phase] || p.Spec.NodeName == "" {
			continue
		}
		counts[p.Spec.NodeName]++
	}

	baseURL := strings.TrimSuffix(e.restCfg.Host, "/")
	for _, node := range nodes.Items {
		name := node.Name
		var cpu, mem float64

		switch {
		case e.cfg.EnableCadvisor:
			url := fmt.Sprintf("%s/api/v1/nodes/%s/proxy/metrics/cadvisor", baseURL, name)
			cpu, mem, err = e.scrapeNode(ctx, url)
			if err != nil {
				e.scrapeErrors.WithLabelValues("cadvisor:" + name).Inc()
				log.Printf("[Exporter] cadvisor %s: %v", name, err)
				continue
			}
		case e.cfg.EnableKubelet:
			url := fmt.Sprintf("%s/api/v1/nodes/%s/proxy/metrics", baseURL, name)
			cpu, mem, err = e.scrapeNode(ctx, url)
			if err != nil {
				e.scrapeErrors.WithLabelValues("kubelet:" + name).Inc()
				log.Printf("[Exporter] kubelet %s: %v", name, err)
				continue
			}
		default:
			continue
		}

		e.cpuUsage.WithLabelValues(name).Set(cpu)
		e.memUsage.WithLabelValues(name).Set(mem)
	}

	for node, count := range counts {
		e.podCount.WithLabelValues(node).Set(count)
	}
	return nil
}

// scrapeNode fetches one metrics endpoint and sums the CPU and memory
// source metrics from its exposition text.
func (e *Exporter) scrapeNode(ctx context.Context, url string) (cpu, mem float64, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, 0, err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("status %d", resp.StatusCode)
	}
	return sumExposition(resp.Body, cpuSourceMetric, memSourceMetric)
}

// excludedPhases normalizes the configured phase names.
func excludedPhases(phases []string) map[corev1.PodPhase]bool {
	out := make(map[corev1.PodPhase]bool, len(phases))
	for _, p := range phases {
		phase := corev1.PodPhase(strings.TrimSpace(p))
		if phase != "" {
			out[phase] = true
		}
	}
	return out
}

func inClusterOrKubeconfig() (*rest.Config, error) {
	cfg, err := rest.InClusterConfig()
	if err == nil {
		return cfg, nil
	}
	kubeconfig := os.Getenv("KUBECONFIG")
	if kubeconfig == "" {
		home, _ := os.UserHomeDir()
		kubeconfig = home + "/.kube/config"
	}
	return clientcmd.BuildConfigFromFlags("", kubeconfig)
}
