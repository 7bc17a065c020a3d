package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"fprep/internal/config"
	"fprep/internal/database"
	"fprep/internal/kitchen"
	"fprep/internal/llm"
	"fprep/internal/mealplan"
	"fprep/internal/metrics"
	"fprep/internal/planner"
	"fprep/internal/preference"
	"fprep/internal/shared"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	switch os.Args[1] {
	case "plan":
		if err := runPlanSession(ctx, cfg); err != nil {
			log.Fatalf("Planning session failed: %v", err)
		}
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		db, err := database.NewDB(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()

		affected, err := metrics.NewStore(db.SQL).Cleanup(ctx, *days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: fprep <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan               Run an interactive planning session (plans are kept in memory only)")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}

// runPlanSession drives one meal plan interactively on stdin/stdout. Nothing
// touches the database; saved plans live only for the session.
func runPlanSession(ctx context.Context, cfg *config.Config) error {
	gen, err := newChatCompleter(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	if c, ok := gen.(llm.Closer); ok {
		defer c.Close()
	}

	mem := mealplan.NewMemoryStore()
	wf := planner.NewWorkflow(gen, mealplan.NewSessionStore(mem), "session")

	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 64*1024), 64*1024)

	input, err := collectInput(in)
	if err != nil {
		return err
	}

	fmt.Println("\nGenerating your meal plan...")
	meta, err := wf.Generate(ctx, input)
	if err != nil {
		return err
	}
	logUsage(meta)
	fmt.Println("\n" + wf.Plan().RawText)

	for wf.Stage() != planner.StageComplete {
		switch ask(in, "\n(a)djust, (s)ave, or (q)uit? ") {
		case "a":
			if err := adjustPlan(ctx, wf, in); err != nil {
				return err
			}
		case "s":
			if err := savePlan(ctx, wf, in); err != nil {
				return err
			}
		case "q":
			fmt.Println("Plan discarded.")
			return nil
		}
	}

	ins := wf.Instructions()
	fmt.Printf("\nPlan saved. Total time: %s\n\n%s\n", ins.TotalTime, ins.RawText)
	fmt.Printf("\nSession plans: %d (kept in memory until exit)\n", len(mem.List()))
	return nil
}

func collectInput(in *bufio.Scanner) (planner.ContextInput, error) {
	var input planner.ContextInput

	input.PlanName = ask(in, "Plan name: ")

	for {
		raw := ask(in, fmt.Sprintf("Days (%d-%d): ", planner.MinDays, planner.MaxDays))
		days, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Println("Please enter a number.")
			continue
		}
		input.Days = days
		break
	}

	if raw := ask(in, "Ingredients on hand ('-' for none): "); raw != "-" {
		input.ExistingIngredients = raw
	}
	input.RequestedMeals = ask(in, "Meals to cover (e.g. lunch and dinner): ")

	inv := kitchen.NewInventory()
	for {
		raw := ask(in, "Equipment (e.g. large_pan=2, stove_burner=4; '-' for none): ")
		if raw == "-" {
			break
		}
		if err := kitchen.ApplySpec(inv, raw); err != nil {
			fmt.Printf("%v\n", err)
			continue
		}
		break
	}
	input.Equipment = inv
	input.Preferences = preference.Default()

	return input, nil
}

func adjustPlan(ctx context.Context, wf *planner.Workflow, in *bufio.Scanner) error {
	if err := wf.StartAdjust(); err != nil {
		return err
	}

	for {
		request := ask(in, "What should change? ('-' to cancel): ")
		if request == "-" {
			if err := wf.CancelAdjustment(); err != nil {
				return err
			}
			fmt.Println("Adjustment cancelled, plan unchanged.")
			return nil
		}

		fmt.Println("\nAdjusting...")
		meta, err := wf.SubmitAdjustment(ctx, request)
		if err == nil {
			logUsage(meta)
			fmt.Println("\n" + wf.Plan().RawText)
			return nil
		}
		if errors.Is(err, planner.ErrEmptyAdjustment) {
			fmt.Println("The change request is empty.")
			continue
		}

		var genErr *planner.GenerationFailedError
		if errors.As(err, &genErr) {
			fmt.Printf("Adjustment failed: %v\nThe current plan is unchanged.\n", err)
			continue
		}
		return err
	}
}

func savePlan(ctx context.Context, wf *planner.Workflow, in *bufio.Scanner) error {
	fmt.Println("\nSaving and writing cooking instructions...")
	meta, err := wf.Save(ctx)
	for err != nil {
		if wf.Stage() != planner.StageGeneratingInstructions {
			return err
		}
		fmt.Printf("Cooking instructions failed: %v\n", err)
		if ask(in, "Retry? (y/n): ") != "y" {
			return err
		}
		fmt.Println("\nRetrying cooking instructions...")
		meta, err = wf.GenerateInstructions(ctx)
	}
	logUsage(meta)
	return nil
}

// logUsage reports token counts for a generation pass. Session mode has no
// database, so the log line is the only record.
func logUsage(meta shared.GenMeta) {
	if meta.Usage.PromptTokens == 0 && meta.Usage.CompletionTokens == 0 {
		return
	}
	log.Print(formatUsage(meta))
}

func formatUsage(meta shared.GenMeta) string {
	return fmt.Sprintf("%s: %d prompt + %d completion tokens in %s",
		meta.Op, meta.Usage.PromptTokens, meta.Usage.CompletionTokens, meta.Latency.Round(time.Millisecond))
}

func ask(in *bufio.Scanner, prompt string) string {
	fmt.Print(prompt)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

func newChatCompleter(ctx context.Context, cfg *config.Config) (llm.ChatCompleter, error) {
	if cfg.LLMProvider == config.ProviderGemini {
		c, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return llm.NewOpenAIClient(cfg), nil
}
