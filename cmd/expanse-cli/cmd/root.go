package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dixieflatline76/Expanse/asset"
	"github.com/dixieflatline76/Expanse/config"
	"github.com/dixieflatline76/Expanse/pkg/genai"
	"github.com/dixieflatline76/Expanse/pkg/studio"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose     bool
	apiKey      string
	baseURL     string
	imageModel  string
	videoModel  string
	cascadePath string
	timeout     time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "expanse-cli",
	Short: "AI image expansion and media tools",
	Long: `Expanse outpaints images onto a larger canvas, runs AI edits, and batch processes
images and PDFs locally.

The API key is read from --api-key, the system keyring (set it from the desktop app),
or the GEMINI_API_KEY environment variable.

Examples:
  expanse-cli expand photo.jpg --left 200 --right 200      # Widen a photo by 400px
  expanse-cli edit remove_background portrait.png          # Run an AI edit
  expanse-cli resize *.jpg --width 1024 --zip              # Batch resize and archive
  expanse-cli pdf create scans/*.png -o scans.pdf          # Images to PDF`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version()

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&apiKey, "api-key", "", "API key (overrides keyring and environment)")
	pf.StringVar(&baseURL, "base-url", config.DefaultAPIBaseURL, "API endpoint")
	pf.StringVar(&imageModel, "image-model", config.DefaultImageModel, "image model")
	pf.StringVar(&videoModel, "video-model", config.DefaultVideoModel, "video model")
	pf.StringVar(&cascadePath, "face-cascade", "", "pigo cascade file; enables the face check for face tools")
	pf.DurationVar(&timeout, "timeout", 10*time.Minute, "overall time limit for AI requests")
}

func version() string {
	if config.AppVersion == "" {
		return "dev"
	}
	return config.AppVersion
}

// logf prints when --verbose is set.
func logf(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// newStudio builds the AI backend from the global flags.
func newStudio() (*studio.Studio, error) {
	key := apiKey
	if key == "" {
		key = config.NewSecrets().GetAPIKey()
	}
	client, err := genai.NewClient(key,
		genai.WithBaseURL(baseURL),
		genai.WithImageModel(imageModel),
		genai.WithVideoModel(videoModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}

	opts := []studio.Option{studio.WithVideo(client)}
	fd, err := studio.LoadFaceDetector(cascadePath)
	if err != nil {
		return nil, err
	}
	if fd != nil {
		opts = append(opts, studio.WithFaceDetector(fd))
	}
	return studio.New(client, asset.NewManager(), opts...), nil
}
