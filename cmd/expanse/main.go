// Command expanse is the desktop app: an outpainting canvas and a set of AI and local media tools.
package main

import (
	"fmt"
	"os"

	"github.com/dixieflatline76/Expanse/asset"
	"github.com/dixieflatline76/Expanse/config"
	"github.com/dixieflatline76/Expanse/pkg/genai"
	"github.com/dixieflatline76/Expanse/pkg/studio"
	"github.com/dixieflatline76/Expanse/pkg/tools"
	"github.com/dixieflatline76/Expanse/ui"
	"github.com/dixieflatline76/Expanse/util/log"
)

// newStudio builds the AI backend from the current preferences. It runs again after the API key
// or model settings change.
func newStudio(cfg *config.AppConfig, secrets *config.Secrets) (*studio.Studio, error) {
	client, err := genai.NewClientFromConfig(cfg, secrets)
	if err != nil {
		return nil, err
	}
	opts := []studio.Option{studio.WithVideo(client)}
	if cfg.GetFaceCheckEnabled() {
		fd, err := studio.LoadFaceDetector(cfg.GetFaceCascadePath())
		if err != nil {
			// A broken cascade should not block the other tools.
			log.Printf("Face check disabled: %v", err)
		} else if fd != nil {
			opts = append(opts, studio.WithFaceDetector(fd))
		}
	}
	return studio.New(client, asset.NewManager(), opts...), nil
}

func main() {
	ok, err := acquireLock()
	if err != nil {
		log.Fatalf("Failed to acquire single instance lock: %v", err)
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "Another instance of %s is already running.\n", config.AppName)
		os.Exit(1)
	}
	defer releaseLock()

	log.Printf("Starting %s %s", config.AppName, config.AppVersion)

	ea := ui.GetInstance()
	cfg, secrets := ea.Config(), ea.Secrets()

	backend := tools.NewBackend(func() (*studio.Studio, error) {
		return newStudio(cfg, secrets)
	})
	ea.RegisterRefreshFunc(backend.Reset)

	tools.Register(ea, &tools.Env{Config: cfg, Backend: backend})
	ea.Start()
}
