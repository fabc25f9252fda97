package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/ONESO-goat/CODEX/internal/engine"
	"github.com/ONESO-goat/CODEX/internal/storage"
)

// printStats shows what the agent remembers plus how its own process is
// doing, so "how are you holding up" has a literal answer.
func printStats(eng *engine.Engine, docs *storage.DocStore) {
	stats := eng.Stats()

	fmt.Println("\nMemory Stats:")
	fmt.Printf("  - total_conversations: %d\n", stats.TotalConversations)
	fmt.Printf("  - facts: %d\n", stats.Facts)
	fmt.Printf("  - preferences_learned: %d\n", stats.PreferencesLearned)
	fmt.Printf("  - last_seen: %s\n", stats.LastSeen)

	if names, err := docs.Documents(); err == nil {
		fmt.Printf("  - brain_documents: %d\n", len(names))
	}

	if topic, ok := eng.Opinions().StrongestBelief(); ok {
		op, _ := eng.Opinions().Get(topic)
		fmt.Printf("  - strongest_belief: %s (stance %.2f)\n", topic, op.Stance)
	}

	fmt.Println("\nProcess:")
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if memInfo, err := proc.MemoryInfo(); err == nil {
			fmt.Printf("  - rss: %s\n", formatBytes(memInfo.RSS))
		}
		if cpu, err := proc.CPUPercent(); err == nil {
			fmt.Printf("  - cpu: %.1f%%\n", cpu)
		}
	}

	if uptime, err := host.Uptime(); err == nil {
		fmt.Printf("  - host_uptime: %s\n", (time.Duration(uptime) * time.Second).String())
	}

	fmt.Println()
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}

	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
