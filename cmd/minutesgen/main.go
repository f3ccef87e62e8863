package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/minutesgen/internal/domain/entities"
	"github.com/johnquangdev/minutesgen/internal/infrastructure/external/confluence"
	"github.com/johnquangdev/minutesgen/internal/infrastructure/storage"
	minutesuse "github.com/johnquangdev/minutesgen/internal/usecase/minutes"
	pkgai "github.com/johnquangdev/minutesgen/pkg/ai"
	"github.com/johnquangdev/minutesgen/pkg/config"
)

// CLI flags; each overrides the matching environment value.
var (
	outputDir        string
	meetingDate      string
	openaiKey        string
	confluenceURL    string
	confluenceUser   string
	confluenceToken  string
	confluenceSpace  string
	confluenceParent string
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minutesgen <transcript>",
		Short: "Generate meeting minutes using AI and publish to Confluence",
		Long: `Generate structured meeting minutes from a stand-up transcript using an
AI completion service, render them as a Confluence document, and publish
them to a Confluence space.

The transcript may be a plain text file or a .docx document. When the
Confluence credentials are incomplete the run produces local files only.

Examples:
  # Generate minutes locally
  minutesgen ./standup.txt --output-dir ./minutes

  # Publish to Confluence
  minutesgen ./standup.docx \
    --confluence-url https://wiki.example.com \
    --confluence-username bot@example.com \
    --confluence-token $CONFLUENCE_TOKEN \
    --confluence-space ENG`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0])
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory for local HTML/JSON copies")
	cmd.Flags().StringVar(&meetingDate, "date", "", "Meeting date (YYYY-MM-DD format, defaults to today)")
	cmd.Flags().StringVar(&openaiKey, "openai-key", "", "OpenAI API key (or set OPENAI_API_KEY)")
	cmd.Flags().StringVar(&confluenceURL, "confluence-url", "", "Confluence base URL")
	cmd.Flags().StringVar(&confluenceUser, "confluence-username", "", "Confluence username/email")
	cmd.Flags().StringVar(&confluenceToken, "confluence-token", "", "Confluence API token")
	cmd.Flags().StringVar(&confluenceSpace, "confluence-space", "", "Confluence space key")
	cmd.Flags().StringVar(&confluenceParent, "confluence-parent-id", "", "Parent page ID (optional)")

	return cmd
}

func run(ctx context.Context, inputPath string) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("❌ Failed to load configuration", zap.Error(err))
		return err
	}
	mergeFlags(cfg)

	if err := cfg.Validate(); err != nil {
		logger.Error("❌ Invalid configuration", zap.Error(err))
		return err
	}

	if cfg.Confluence.PublishEnabled() {
		logger.Info("🌐 Confluence configuration detected - will publish to Confluence")
	} else {
		logger.Info("📄 No Confluence configuration - will generate local files only")
	}

	llm := pkgai.NewClient(&cfg.LLM)
	extractor := minutesuse.NewExtractor(llm, &cfg.LLM, &cfg.Pipeline, logger)
	renderer := minutesuse.NewRenderer()
	advisor := minutesuse.NewAdvisor(llm, &cfg.LLM, logger)

	var publisher minutesuse.Publisher
	if cfg.Confluence.PublishEnabled() {
		publisher = confluence.NewClient(&cfg.Confluence, logger)
	}

	var saver minutesuse.LocalSaver
	if cfg.Pipeline.OutputDir != "" {
		saver = storage.NewLocalWriter(cfg.Pipeline.OutputDir, logger)
	}

	svc := minutesuse.NewService(extractor, renderer, advisor, publisher, saver, cfg.Pipeline.TitlePrefix, logger)

	logger.Info("📥 Processing transcript", zap.String("input", inputPath))
	result, err := svc.ProcessFile(ctx, inputPath, cfg.Pipeline.MeetingDate)
	if err != nil {
		logger.Error("❌ Error processing transcript", zap.Error(err))
		return err
	}

	printSummary(result)
	return nil
}

// mergeFlags lays explicit CLI flags over environment-derived config
func mergeFlags(cfg *config.Config) {
	if openaiKey != "" {
		cfg.LLM.APIKey = openaiKey
	}
	if outputDir != "" {
		cfg.Pipeline.OutputDir = outputDir
	}
	if meetingDate != "" {
		cfg.Pipeline.MeetingDate = meetingDate
	}
	if confluenceURL != "" {
		cfg.Confluence.BaseURL = confluenceURL
	}
	if confluenceUser != "" {
		cfg.Confluence.Username = confluenceUser
	}
	if confluenceToken != "" {
		cfg.Confluence.APIToken = confluenceToken
	}
	if confluenceSpace != "" {
		cfg.Confluence.SpaceKey = confluenceSpace
	}
	if confluenceParent != "" {
		cfg.Confluence.ParentPageID = confluenceParent
	}
}

func printSummary(result *entities.PublishResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("✅ SUCCESS! Meeting minutes generated using AI")
	fmt.Println(strings.Repeat("=", 50))

	if result.LocalHTMLPath != "" {
		fmt.Printf("📄 HTML Minutes: %s\n", result.LocalHTMLPath)
		fmt.Printf("📊 JSON Data: %s\n", result.LocalJSONPath)
	}
	if result.PageLink != "" {
		fmt.Printf("🌐 Confluence Page: %s\n", result.PageLink)
	}

	fmt.Println("\n📋 Meeting Summary:")
	fmt.Printf("   • Attendees: %d\n", len(result.Minutes.Attendees))
	fmt.Printf("   • Action Items: %d\n", len(result.Minutes.ActionItems))
	fmt.Printf("   • Blockers: %d\n", len(result.Minutes.Blockers))
	fmt.Printf("   • Decisions: %d\n", len(result.Minutes.Decisions))
}
