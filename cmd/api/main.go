package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	configapi "reportfinder/pkg/api/config"
	discoveryapi "reportfinder/pkg/api/discovery"
	"reportfinder/pkg/core/agent"
	"reportfinder/pkg/core/discovery"
	"reportfinder/pkg/core/llmfinder"
	"reportfinder/pkg/core/queryparse"
	"reportfinder/pkg/core/regulator"
	"reportfinder/pkg/core/scrape"
	"reportfinder/pkg/core/search"
	"reportfinder/pkg/core/store"
)

// finderConfig is config/finder.yaml.
type finderConfig struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Search struct {
		QueriesPerSecond float64 `yaml:"queries_per_second"`
	} `yaml:"search"`
	Crawl struct {
		FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
	} `yaml:"crawl"`
	Cache struct {
		Path       string `yaml:"path"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"cache"`
}

func loadFinderConfig() finderConfig {
	cfg := finderConfig{}
	cfg.Server.Port = 8080
	cfg.Search.QueriesPerSecond = 2.0
	cfg.Crawl.FetchTimeoutSeconds = 15
	cfg.Cache.Path = "data/reports.db"
	cfg.Cache.MaxAgeDays = 7

	data, err := os.ReadFile("config/finder.yaml")
	if err != nil {
		fmt.Printf("[CONFIG] finder.yaml not found, using defaults: %v\n", err)
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Printf("[CONFIG] finder.yaml invalid, using defaults: %v\n", err)
	}
	return cfg
}

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := loadFinderConfig()

	// Initialize LLM provider manager from config
	var agentCfg agent.Config
	if data, err := os.ReadFile("config/models.yaml"); err == nil {
		yaml.Unmarshal(data, &agentCfg)
	}
	agentMgr := agent.NewManager(agentCfg)

	// Wire the discovery pipeline
	searcher := search.NewClient(os.Getenv("SERPER_API_KEY"), cfg.Search.QueriesPerSecond)
	if !searcher.Enabled() {
		fmt.Println("[WARNING] SERPER_API_KEY not set; direct PDF search disabled")
	}
	fetcher := scrape.NewFetcher(time.Duration(cfg.Crawl.FetchTimeoutSeconds) * time.Second)

	discoveryAgent := discovery.NewAgent(searcher, fetcher)
	discoveryAgent.Regulator = regulator.NewClient()
	discoveryAgent.Fallback = llmfinder.NewRetriever(agentMgr)
	discoveryAgent.CacheMaxAge = time.Duration(cfg.Cache.MaxAgeDays) * 24 * time.Hour

	cache, err := store.Open(cfg.Cache.Path)
	if err != nil {
		fmt.Printf("[WARNING] cache unavailable, running without it: %v\n", err)
	} else {
		discoveryAgent.Cache = cache
		defer cache.Close()
	}

	parser := queryparse.NewParser(agentMgr)

	// Config endpoints
	configHandler := configapi.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Discovery endpoints
	discoveryHandler := discoveryapi.NewHandler(discoveryAgent, parser)
	http.HandleFunc("/api/discovery/search", discoveryHandler.HandleSearch)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("API server starting on %s...\n", addr)
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - POST /api/discovery/search")

	if err := http.ListenAndServe(addr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
