package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"self_critic_writer/pipeline"
	"self_critic_writer/report"
	"self_critic_writer/server"
)

var verbose bool

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	configPath := flag.String("config", "config/config.json", "path to config.json")
	topic := flag.String("topic", "", "topic to write about")
	length := flag.String("length", "", "length tier: short|medium|long (overrides config)")
	improve := flag.Bool("improve", false, "iterate until the quality threshold is met")
	threshold := flag.Float64("threshold", 0, "quality threshold for --improve (overrides config)")
	iterations := flag.Int("iterations", 0, "max iterations for --improve (overrides config)")
	out := flag.String("out", "", "write an HTML report to this path")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	flag.BoolVar(&verbose, "v", false, "enable info logs")
	flag.Parse()

	cfg, err := report.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *length != "" {
		cfg.Pipeline.Length = *length
	}

	gen, critic := buildStages(cfg)

	// Web server mode
	if *serve {
		srv, err := server.New(gen, critic, cfg, log.Default())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		if listen == "" {
			listen = ":8080"
		}
		log.Printf("Starting web server on %s", listen)
		if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if *topic == "" {
		fmt.Fprintln(os.Stderr, "--topic is required (or use --serve)")
		os.Exit(1)
	}

	sess := pipeline.NewSession("cli", *topic, pipeline.ParseLengthTier(cfg.Pipeline.Length), gen, critic)

	ctx := context.Background()
	var rec pipeline.IterationRecord
	if *improve {
		t := cfg.Pipeline.QualityThreshold
		if *threshold > 0 {
			t = *threshold
		}
		n := cfg.Pipeline.MaxIterations
		if *iterations > 0 {
			n = *iterations
		}
		var met bool
		rec, met, err = sess.ImproveUntil(ctx, t, n)
		if err == nil {
			if met {
				log.Printf("[cli] threshold %.1f reached after %d iteration(s)", t, rec.Index)
			} else {
				log.Printf("[cli] stopped at %d iteration(s) without reaching threshold %.1f", rec.Index, t)
			}
		}
	} else {
		rec, err = sess.RunIteration(ctx)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *out != "" {
		if err := report.WriteFile(*out, sess.Topic, sess.History); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		log.Printf("[cli] report written to %s", *out)
	}

	fmt.Println(rec.Generation.Text)
	fmt.Println("---")
	fmt.Println(rec.Critique.Text)
	if verbose {
		log.Printf("[cli] content source=%s critique source=%s scored=%v score=%.1f",
			rec.Generation.Source, rec.Critique.Source, rec.Critique.Scored, rec.Critique.Score)
	}
}

// buildStages wires the pipeline from config. A missing credential is not an
// error: the stages run in fallback-only mode with a nil model client.
func buildStages(cfg report.Config) (*pipeline.Generator, *pipeline.Critic) {
	var llm pipeline.ModelClient
	apiKey := cfg.ResolveAPIKey()
	switch {
	case apiKey == "":
		log.Printf("[cli] no api key configured; running in fallback-only mode")
	case cfg.LLM.Model == "":
		log.Printf("[cli] no model id configured; running in fallback-only mode")
	default:
		client, err := pipeline.NewOpenAIModel(&pipeline.ModelSettings{
			Model:            cfg.LLM.Model,
			APIKey:           apiKey,
			BaseURL:          cfg.LLM.BaseURL,
			MaxTokensCeiling: cfg.LLM.MaxTokens,
		})
		if err != nil {
			log.Printf("[cli] model client unavailable (%v); running in fallback-only mode", err)
		} else {
			llm = client
		}
	}

	timeout := time.Duration(cfg.Pipeline.TimeoutSeconds) * time.Second
	gen := pipeline.NewGenerator(llm, pipeline.StageConfig{
		Calls:   pipeline.CallOptions{MaxTokens: cfg.Pipeline.GenerationTokens, Temperature: cfg.Pipeline.Temperature},
		Timeout: timeout,
	})
	critic := pipeline.NewCritic(llm, pipeline.StageConfig{
		Calls:   pipeline.CallOptions{MaxTokens: cfg.Pipeline.CritiqueTokens, Temperature: cfg.Pipeline.Temperature},
		Timeout: timeout,
	})
	return gen, critic
}
