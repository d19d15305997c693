// Command finder runs a discovery request from the command line and prints
// the result as JSON.
//
//	finder "Annual reports for Global Ports Holding from 2020 to 2024"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

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

func loadFinderConfig(path string) finderConfig {
	cfg := finderConfig{}
	cfg.Search.QueriesPerSecond = 2.0
	cfg.Crawl.FetchTimeoutSeconds = 15
	cfg.Cache.Path = "data/reports.db"
	cfg.Cache.MaxAgeDays = 7

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Printf("[CONFIG] %s invalid, using defaults: %v\n", path, err)
	}
	return cfg
}

func main() {
	godotenv.Load()

	configPath := flag.String("config", "config/finder.yaml", "finder config file")
	modelsPath := flag.String("models", "config/models.yaml", "LLM provider config file")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall run timeout")
	noCache := flag.Bool("no-cache", false, "skip the report cache")
	flag.Parse()

	query := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if query == "" {
		fmt.Fprintln(os.Stderr, "usage: finder [flags] <natural-language query>")
		os.Exit(2)
	}

	cfg := loadFinderConfig(*configPath)

	var agentCfg agent.Config
	if data, err := os.ReadFile(*modelsPath); err == nil {
		yaml.Unmarshal(data, &agentCfg)
	}
	agentMgr := agent.NewManager(agentCfg)

	searcher := search.NewClient(os.Getenv("SERPER_API_KEY"), cfg.Search.QueriesPerSecond)
	fetcher := scrape.NewFetcher(time.Duration(cfg.Crawl.FetchTimeoutSeconds) * time.Second)

	discoveryAgent := discovery.NewAgent(searcher, fetcher)
	discoveryAgent.Regulator = regulator.NewClient()
	discoveryAgent.Fallback = llmfinder.NewRetriever(agentMgr)
	discoveryAgent.CacheMaxAge = time.Duration(cfg.Cache.MaxAgeDays) * 24 * time.Hour

	if !*noCache {
		cache, err := store.Open(cfg.Cache.Path)
		if err != nil {
			fmt.Printf("[WARNING] cache unavailable, running without it: %v\n", err)
		} else {
			discoveryAgent.Cache = cache
			defer cache.Close()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	parsed := queryparse.NewParser(agentMgr).Parse(ctx, query)
	if parsed.Company == "" && parsed.UserURL == "" {
		fmt.Fprintln(os.Stderr, "could not extract a company from the query")
		os.Exit(2)
	}

	result, err := discoveryAgent.Discover(ctx, discovery.Request{
		Company:   parsed.Company,
		DocTypes:  parsed.DocTypes,
		StartYear: parsed.StartYear,
		EndYear:   parsed.EndYear,
		Quarters:  parsed.Quarters,
		SourceURL: parsed.UserURL,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "discovery failed: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
