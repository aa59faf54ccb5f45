package registry

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"glinerd/internal/common/fsutil"
	"glinerd/internal/gliner"
)

// DefaultHubURL is the Hugging Face hub base used by Pull.
const DefaultHubURL = "https://huggingface.co"

// remote artifact paths inside a hub repository, keyed by local file name.
var remoteArtifacts = []struct{ local, remote string }{
	{TokenizerFile, "tokenizer.json"},
	{ModelFile, "onnx/model.onnx"},
}

// Downloader fetches model artifacts from a Hugging Face compatible hub.
type Downloader struct {
	HubURL   string
	Token    string
	Revision string
	Logger   zerolog.Logger
	client   *retryablehttp.Client
}

// NewDownloader returns a Downloader with retries and sane timeouts.
func NewDownloader(logger zerolog.Logger) *Downloader {
	c := retryablehttp.NewClient()
	c.RetryMax = 4
	c.RetryWaitMin = 500 * time.Millisecond
	c.RetryWaitMax = 10 * time.Second
	c.Logger = leveledLogger{l: logger}
	return &Downloader{
		HubURL:   DefaultHubURL,
		Revision: "main",
		Logger:   logger,
		client:   c,
	}
}

// PullResult describes artifacts written by Pull.
type PullResult struct {
	Files gliner.ModelFiles
	Bytes int64
}

// Pull downloads tokenizer.json and onnx/model.onnx for modelID into
// <modelsDir>/<modelID>/. Each file is written atomically. Existing files are
// overwritten.
func (d *Downloader) Pull(ctx context.Context, modelID, modelsDir string) (PullResult, error) {
	files, err := Resolve(modelsDir, modelID)
	if err != nil {
		return PullResult{}, err
	}
	if d.client == nil {
		d.client = NewDownloader(d.Logger).client
	}
	base := strings.TrimRight(d.HubURL, "/")
	if base == "" {
		base = DefaultHubURL
	}
	rev := d.Revision
	if rev == "" {
		rev = "main"
	}
	dir := filepath.Dir(files.Model)
	var total int64
	for _, a := range remoteArtifacts {
		url := fmt.Sprintf("%s/%s/resolve/%s/%s", base, modelID, rev, a.remote)
		n, err := d.fetch(ctx, url, filepath.Join(dir, a.local))
		if err != nil {
			return PullResult{}, fmt.Errorf("download %s: %w", a.remote, err)
		}
		d.Logger.Info().Str("model", modelID).Str("file", a.local).Str("size", humanize.Bytes(uint64(n))).Msg("artifact downloaded")
		total += n
	}
	return PullResult{Files: files, Bytes: total}, nil
}

func (d *Downloader) fetch(ctx context.Context, url, dest string) (int64, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	if d.Token != "" {
		req.Header.Set("Authorization", "Bearer "+d.Token)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return fsutil.WriteFileAtomic(dest, resp.Body)
}

// leveledLogger adapts zerolog to retryablehttp.LeveledLogger.
type leveledLogger struct{ l zerolog.Logger }

func (z leveledLogger) Error(msg string, kv ...interface{}) { z.emit(z.l.Error(), msg, kv) }
func (z leveledLogger) Info(msg string, kv ...interface{})  { z.emit(z.l.Debug(), msg, kv) }
func (z leveledLogger) Debug(msg string, kv ...interface{}) { z.emit(z.l.Debug(), msg, kv) }
func (z leveledLogger) Warn(msg string, kv ...interface{})  { z.emit(z.l.Warn(), msg, kv) }

func (leveledLogger) emit(ev *zerolog.Event, msg string, kv []interface{}) {
	for i := 0; i+1 < len(kv); i += 2 {
		k, _ := kv[i].(string)
		ev = ev.Interface(k, kv[i+1])
	}
	ev.Msg(msg)
}
