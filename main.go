package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/ytdl-desktop/internal/bridge"
	"github.com/ytget/ytdl-desktop/internal/commands"
	"github.com/ytget/ytdl-desktop/internal/config"
	"github.com/ytget/ytdl-desktop/internal/logging"
	"github.com/ytget/ytdl-desktop/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.ytdl-desktop"
	AppName = "YTDL Desktop"

	ShutdownTimeout = 5 * time.Second
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	bridgeCfg, configPath, err := config.LoadBridgeConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load bridge config: %v\n", err)
		os.Exit(1)
	}
	if err := logging.ConfigureLogger(bridgeCfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level: %v\n", err)
		os.Exit(1)
	}
	logging.Info("Starting shell", logging.Fields{
		logging.FieldVersion:    version,
		logging.FieldConfigPath: configPath,
	})

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewShellTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(myApp)

	registry := bridge.NewRegistry()
	registry.SetHistorySize(settings.GetHistorySize())
	if err := commands.Register(registry, commands.NewSystemOpener(myApp)); err != nil {
		logging.Error("Failed to register commands", logging.Fields{logging.FieldError: err})
		os.Exit(1)
	}

	server := bridge.NewServer(registry, bridge.Options{
		ListenAddr:     bridgeCfg.ListenAddr,
		AllowedOrigins: bridgeCfg.AllowedOrigins,
		MaxBodyBytes:   bridgeCfg.MaxBodyBytes,
	})

	bridgeURL := ""
	if err := server.Start(); err != nil {
		// The window still opens so the user can see the bridge is down.
		logging.Error("Failed to start bridge", logging.Fields{
			logging.FieldAddr:  bridgeCfg.ListenAddr,
			logging.FieldError: err,
		})
	} else {
		bridgeURL = server.URL()
	}

	ui.NewRootUI(myWindow, settings, registry, bridgeURL)

	myWindow.ShowAndRun()

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Warn("Bridge shutdown did not complete", logging.Fields{logging.FieldError: err})
	}
}
