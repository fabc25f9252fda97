package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ONESO-goat/CODEX/internal/autonomous"
	"github.com/ONESO-goat/CODEX/internal/brain"
	"github.com/ONESO-goat/CODEX/internal/config"
	"github.com/ONESO-goat/CODEX/internal/conversation"
	"github.com/ONESO-goat/CODEX/internal/engine"
	"github.com/ONESO-goat/CODEX/internal/expression"
	"github.com/ONESO-goat/CODEX/internal/llm"
	"github.com/ONESO-goat/CODEX/internal/logger"
	"github.com/ONESO-goat/CODEX/internal/memory"
	"github.com/ONESO-goat/CODEX/internal/persona"
	"github.com/ONESO-goat/CODEX/internal/storage"
)

func init() {
	godotenv.Load()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	docs, err := storage.NewDocStore(cfg.BrainPath)
	if err != nil {
		logger.Fatal("failed to open storage", "error", err)
	}

	core, err := brain.Boot(docs)
	if err != nil {
		logger.Fatal("failed to boot agent", "error", err)
	}
	core.UpdateAge()
	core.EmotionalAwareness()

	character, err := persona.Load(cfg.PersonaPath)
	if err != nil {
		logger.Fatal("failed to load persona", "error", err)
	}

	backend, err := llm.New(llm.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
	})
	if err != nil {
		logger.Fatal("failed to create llm", "error", err)
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("      CODEX")
	fmt.Println(strings.Repeat("=", 60))

	stdin := bufio.NewScanner(os.Stdin)

	fmt.Print("LOG IN OR SIGN UP: ")
	username := "guest"
	if stdin.Scan() {
		if name := strings.TrimSpace(stdin.Text()); name != "" {
			username = name
		}
	}
	userID := strings.ToLower(username)
	fmt.Printf("\nWelcome, %s!\n", username)

	profiles := memory.NewStore(docs, core.Name())
	profile, err := profiles.Load(userID)
	if err != nil {
		logger.Fatal("failed to load user profile", "user", userID, "error", err)
	}

	extractor := memory.NewExtractor(profiles, core)
	buffer := conversation.NewBuffer(cfg.Buffer.MaxTurns)
	sess := conversation.NewSession(buffer, profile, extractor, core)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng, err := engine.New(ctx, backend, persona.NewBuilder(character, cfg.PersonaPath), sess, profiles, core, docs)
	if err != nil {
		logger.Fatal("backend unreachable", "provider", cfg.LLM.Provider, "error", err)
	}

	if cfg.Backup.Endpoint != "" {
		backup, err := storage.NewBackup(storage.BackupConfig{
			Endpoint:  cfg.Backup.Endpoint,
			AccessKey: cfg.Backup.AccessKey,
			SecretKey: cfg.Backup.SecretKey,
			UseSSL:    cfg.Backup.UseSSL,
			Bucket:    cfg.Backup.Bucket,
		})
		if err != nil {
			logger.Warn("backup disabled", "error", err)
		} else if err := backup.Init(ctx); err != nil {
			logger.Warn("backup disabled", "error", err)
		} else {
			eng.SetBackup(backup)
		}
	}

	loop := autonomous.New(core, docs, autonomous.Options{
		Schedule:    cfg.Thoughts.Schedule,
		FlushEvery:  cfg.Thoughts.FlushEvery,
		ThinkChance: cfg.Thoughts.ThinkChance,
	})
	if err := loop.Start(ctx); err != nil {
		logger.Fatal("failed to start autonomous loop", "error", err)
	}

	face := expression.NewDetector()

	if stats := eng.Stats(); stats.TotalConversations > 0 {
		fmt.Printf("Returning user - %d previous conversations\n", stats.TotalConversations)
		fmt.Printf("Last seen: %s\n\n", stats.LastSeen)
	} else {
		fmt.Println("New user - starting fresh!")
		fmt.Println()
	}

	fmt.Printf("CODEX: %s\n\n", loop.InitiateConversation())

	// end the session cleanly on Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\n\nInterrupted.")
		eng.EndSession(context.Background())
		os.Exit(0)
	}()

	for {
		fmt.Printf("%s: ", username)
		if !stdin.Scan() {
			break
		}

		input := strings.TrimSpace(stdin.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "quit":
			eng.EndSession(ctx)
			fmt.Println("\nBye")
			return
		case "reset":
			eng.Reset()
			fmt.Println("\nConversation reset!")
			fmt.Println()
			continue
		case "stats":
			printStats(eng, docs)
			continue
		}

		reply := eng.Chat(ctx, input)
		face.Check(reply)

		fmt.Printf("\nCODEX: %s\n", reply)
		if emotion, ok := face.Current(); ok {
			fmt.Printf("[%s]\n", emotion)
		}
		fmt.Println()
	}

	eng.EndSession(ctx)
}
