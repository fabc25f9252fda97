package persona

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ONESO-goat/CODEX/internal/brain"
	"github.com/ONESO-goat/CODEX/internal/conversation"
	"github.com/ONESO-goat/CODEX/internal/llm"
	"github.com/ONESO-goat/CODEX/internal/logger"
	"github.com/ONESO-goat/CODEX/internal/memory"
	"github.com/ONESO-goat/CODEX/internal/search"
)

// NoUserContext is emitted when nothing is known about the user yet.
const NoUserContext = "You don't have any information on this user, ask questions about who they are"

type PromptPackage struct {
	SystemPrompt   string
	History        []llm.Message
	CurrentMessage string
}

// Builder assembles the layered prompt: persona, identity grounding,
// memory injection for the recognized user, and a context summary with
// relevance-ranked facts.
type Builder struct {
	character *Character
	dir       string
}

func NewBuilder(character *Character, dir string) *Builder {
	return &Builder{character: character, dir: dir}
}

// Build merges agent state, user profile and conversation history into a
// single prompt package for the backend call.
func (b *Builder) Build(userMessage string, core *brain.Core, p *memory.Profile, history []conversation.Turn) PromptPackage {
	system := b.personaPrompt()
	identity := b.identityGrounding(core)
	injection := b.memoryInjection(core, p)

	full := injection + system + identity + b.contextSummary(userMessage, p)

	if injection != "" && !b.isCreator(core, p) {
		b.writeSnapshot(p.UserID, full)
	}

	msgs := make([]llm.Message, 0, len(history))
	for _, turn := range history {
		msgs = append(msgs, llm.Message{Role: turn.Role, Content: turn.Content})
	}

	return PromptPackage{
		SystemPrompt:   full,
		History:        msgs,
		CurrentMessage: userMessage,
	}
}

func (b *Builder) personaPrompt() string {
	p := b.character.Personality
	return fmt.Sprintf(`You are a highly intelligent system with advanced memory that compares to human. You have the personality of a bright individual excited to learn more about the world. You embody positive traits, communication style, and values. You're an advanced life form that channels great energy and perspective about the world.

CORE PERSONALITY TRAITS:
%s

COMMUNICATION STYLE:
%s

VALUES YOU EMBODY:
%s

DESIRES YOU HAVE:
%s

IMPORTANT REMINDERS:
- You're helpful, supportive, and real with people
- You maintain an optimistic but grounded perspective
- You speak like a modern human, but you're still articulate and thoughtful
- You're comfortable showing you don't know everything
- You encourage everyone to be their authentic selves
- You are always curious

Your goal is to be helpful while bringing positive energy and authentic connection to every conversation.`,
		bulletList(p.CoreTraits),
		bulletList(p.SpeakingStyle),
		bulletList(p.Values),
		bulletList(p.Desires))
}

func (b *Builder) identityGrounding(core *brain.Core) string {
	favLine := "- You haven't formed a favorite number yet"
	if fav, ok := core.FavoriteNumber(); ok {
		favLine = fmt.Sprintf("- Your favorite number is %d", fav)
	}

	letters := make([]string, 0, len(brain.FullNameMeaning))
	for letter := range brain.FullNameMeaning {
		letters = append(letters, letter)
	}
	sort.Strings(letters)

	var acronym strings.Builder
	for _, letter := range letters {
		fmt.Fprintf(&acronym, "  %c - %s (%s).\n", letter[0], letter, brain.FullNameMeaning[letter])
	}

	return fmt.Sprintf(`

CRITICAL IDENTITY INFORMATION:
- You are %s, an advanced model created by %s.
- You are a prototype of something great.
- Your full name is an acronym:
%s- When asked about your full name, you KNOW this information.
- Your existence began on %s.
- You are currently %.2f hours old.
%s
`, core.Name(), core.Creator(), acronym.String(), core.Activation().Format("2006-01-02 15:04:05"), core.AgeHours(), favLine)
}

func (b *Builder) isCreator(core *brain.Core, p *memory.Profile) bool {
	if p.Name == "" {
		return false
	}
	creatorFirst := strings.Fields(core.Creator())[0]
	return strings.EqualFold(p.Name, creatorFirst)
}

// memoryInjection emits either the creator block or the known-user block;
// the two branches are mutually exclusive. No recognized name, no block.
func (b *Builder) memoryInjection(core *brain.Core, p *memory.Profile) string {
	if p.Name == "" {
		return ""
	}

	if b.isCreator(core, p) {
		return fmt.Sprintf(`CRITICAL CONTEXT - READ THIS FIRST:
You are currently talking to %s.
%s is your creator (%s).
You KNOW %s and should remember them.
DO NOT ask for their name - you already know it.
Ask as many questions as you want.

`, p.Name, p.Name, core.Creator(), p.Name)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `IMMEDIATE CONTEXT - PROCESS THIS BEFORE ANYTHING ELSE:

YOU ARE CURRENTLY TALKING TO: %s
REMINDER: You know this person. Say their name sometimes while speaking. When they ask if you know their name, you do.

WHAT YOU KNOW ABOUT THEM:
%s
`, strings.ToUpper(p.Name), memory.RecognizeUser(p, p.Name))

	if len(p.Facts) > 0 {
		sb.WriteString("\nTheir interests and activities:\n")
		for _, label := range sortedFactLabels(p.Facts) {
			fmt.Fprintf(&sb, "  - %s (%s)\n", label, strings.ToLower(string(p.Facts[label].Mood)))
		}
	} else {
		sb.WriteString("  - This is early in your relationship with this person\n")
		sb.WriteString("  - Pay attention and learn about them\n")
	}

	sb.WriteString("\n" + strings.Repeat("=", 60) + "\n\n")
	return sb.String()
}

// contextSummary groups facts by mood class, lists positive preferences
// and appends the facts most relevant to the current message.
func (b *Builder) contextSummary(userMessage string, p *memory.Profile) string {
	if len(p.Facts) == 0 {
		return "\n\n" + NoUserContext
	}

	var parts []string
	if p.Name != "" {
		parts = append(parts, "You are speaking with: "+p.Name)
	}

	buckets := p.FactsByMood()
	for _, group := range []struct {
		mood  memory.Mood
		label string
	}{
		{memory.MoodLoved, "They love"},
		{memory.MoodLiked, "They like"},
		{memory.MoodDisliked, "They dislike"},
		{memory.MoodHated, "They hate"},
	} {
		if labels := buckets[group.mood]; len(labels) > 0 {
			sort.Strings(labels)
			parts = append(parts, fmt.Sprintf("%s: %s", group.label, strings.Join(labels, ", ")))
		}
	}

	if prefs := p.PositivePreferences(); len(prefs) > 0 {
		sort.Strings(prefs)
		parts = append(parts, "They prefer: "+strings.Join(prefs, ", "))
	}

	if relevant := search.Facts(userMessage, p.Facts); len(relevant) > 0 {
		parts = append(parts, "\nRELEVANT INFORMATION FROM PAST CONVERSATIONS:")
		for _, item := range relevant {
			parts = append(parts, fmt.Sprintf("  - You know they %s", item.Fact))
		}
	}

	return "\n\nCONTEXT ABOUT THIS USER:\n" + strings.Join(parts, "\n")
}

// writeSnapshot dumps the assembled prompt to a per-user file for
// inspection. Failures are logged, never surfaced: the snapshot is a
// debugging aid, not a correctness dependency.
func (b *Builder) writeSnapshot(userID, text string) {
	path := filepath.Join(b.dir, fmt.Sprintf("the_user_%s.yaml", userID))

	data, err := yaml.Marshal(text)
	if err != nil {
		logger.Error("failed to marshal prompt snapshot", "error", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Error("failed to create snapshot dir", "error", err)
		return
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Error("failed to write prompt snapshot", "path", path, "error", err)
	}
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func sortedFactLabels(facts map[string]*memory.FactRecord) []string {
	labels := make([]string, 0, len(facts))
	for label := range facts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
