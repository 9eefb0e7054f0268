// Package commands registers the native commands the web UI can invoke
// through the host bridge.
package commands

import (
	"context"
	"errors"
	"net/url"

	"fyne.io/fyne/v2"

	"github.com/ytget/ytdl-desktop/internal/bridge"
	"github.com/ytget/ytdl-desktop/internal/chunk"
	"github.com/ytget/ytdl-desktop/internal/logging"
	"github.com/ytget/ytdl-desktop/internal/platform"
)

// Command names as invoked by the web UI
const (
	AppendChunkToFile = "append_chunk_to_file"
	OpenURL           = "open_url"
	OpenPath          = "open_path"
	RevealPath        = "reveal_path"
)

// Opener launches URLs and files outside the app
type Opener interface {
	OpenURL(u *url.URL) error
	OpenPath(path string) error
	RevealPath(path string) error
}

// AppendChunkArgs are the arguments of append_chunk_to_file
type AppendChunkArgs struct {
	Path   string `json:"path"`
	Base64 string `json:"base64"`
}

func (a AppendChunkArgs) InvocationTarget() string { return a.Path }

// URLArgs are the arguments of open_url
type URLArgs struct {
	URL string `json:"url"`
}

func (a URLArgs) InvocationTarget() string { return a.URL }

// PathArgs are the arguments of open_path and reveal_path
type PathArgs struct {
	Path string `json:"path"`
}

func (a PathArgs) InvocationTarget() string { return a.Path }

// Register adds every native command to registry. opener may be nil, in
// which case the opener commands are not registered.
func Register(registry *bridge.Registry, opener Opener) error {
	appender := chunk.NewAppender()

	err := registry.Register(AppendChunkToFile, bridge.Typed(func(ctx context.Context, args AppendChunkArgs) (any, error) {
		// Paths are used as given; relative ones resolve against the working directory.
		_, err := appender.Append(ctx, args.Path, args.Base64)
		return nil, err
	}))
	if err != nil {
		return err
	}

	if opener == nil {
		return nil
	}

	return errors.Join(
		registry.Register(OpenURL, bridge.Typed(func(ctx context.Context, args URLArgs) (any, error) {
			u, err := platform.ParseOpenableURL(args.URL)
			if err != nil {
				return nil, err
			}
			logging.Info("opening url", logging.Fields{logging.FieldURL: u.String()})
			return nil, opener.OpenURL(u)
		})),
		registry.Register(OpenPath, bridge.Typed(func(ctx context.Context, args PathArgs) (any, error) {
			return nil, opener.OpenPath(args.Path)
		})),
		registry.Register(RevealPath, bridge.Typed(func(ctx context.Context, args PathArgs) (any, error) {
			return nil, opener.RevealPath(args.Path)
		})),
	)
}

// SystemOpener opens targets with the OS handlers. URLs go through the Fyne
// app when one is set so the driver can pick the right browser.
type SystemOpener struct {
	App fyne.App
}

// NewSystemOpener creates an opener bound to app, which may be nil
func NewSystemOpener(app fyne.App) *SystemOpener {
	return &SystemOpener{App: app}
}

func (o *SystemOpener) OpenURL(u *url.URL) error {
	if o.App != nil {
		return o.App.OpenURL(u)
	}
	return platform.OpenURL(u.String())
}

func (o *SystemOpener) OpenPath(path string) error {
	return platform.OpenFileWithDefaultApp(path)
}

func (o *SystemOpener) RevealPath(path string) error {
	return platform.OpenFileInManager(path)
}
