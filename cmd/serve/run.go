package serve

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"sync"

	"github.com/ak0r/zero-theme/building"
	"github.com/ak0r/zero-theme/config"
	"github.com/ak0r/zero-theme/data"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func RunServeCmd(cmd *cobra.Command, args []string) error {
	settings, err := config.Current()
	if err != nil {
		return err
	}

	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}

	drafts, err := cmd.Flags().GetBool("drafts")
	if err != nil {
		return err
	}

	opts := building.NewOptions(settings)
	opts.IncludeDrafts = drafts

	api := newServeAPI(opts)
	if err := api.Rebuild(); err != nil {
		return err
	}

	if watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		go func() {
			if err := Watch(ctx, opts.ContentDirectory, DefaultDebounce, api.Rebuild); err != nil {
				log.Printf("watcher stopped: %v", err)
			}
		}()
	}

	log.Printf("serving '%s' on %s", opts.BuildDirectory, settings.ServeAddr)

	return api.Router().Run(settings.ServeAddr)
}

type serveAPI struct {
	opts      building.Options
	filenamer building.Filenamer

	mu    sync.RWMutex
	store *data.Store
}

func newServeAPI(opts building.Options) *serveAPI {
	return &serveAPI{opts: opts}
}

// Rebuild runs an incremental build and swaps in its document store.
func (api *serveAPI) Rebuild() error {
	result, err := building.Build(api.opts)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	log.Printf("rebuilt %d entries, %d assets, %d failures", result.Rendered, result.Assets, result.Failed)

	api.mu.Lock()
	api.store = result.Store
	api.mu.Unlock()

	return nil
}

func (api *serveAPI) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.UseRawPath = true

	r.GET("/entry/:GUID", api.ServeEntry)
	r.NoRoute(api.ServeFile)

	return r
}

// ServeEntry redirects a document GUID to the entry page.
func (api *serveAPI) ServeEntry(c *gin.Context) {
	guid, err := uuid.Parse(c.Param("GUID"))
	if err != nil {
		c.String(http.StatusNotFound, "not found")
		return
	}

	api.mu.RLock()
	store := api.store
	api.mu.RUnlock()

	if store == nil {
		c.String(http.StatusServiceUnavailable, "not built")
		return
	}

	doc := store.DocumentByGUID(guid)
	if doc == nil {
		c.String(http.StatusNotFound, "not found")
		return
	}

	c.Redirect(http.StatusFound, api.filenamer.EntryURL(doc))
}

func (api *serveAPI) ServeFile(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Status(http.StatusMethodNotAllowed)
		return
	}

	p, ok := api.resolve(c.Request.URL.Path)
	if !ok {
		c.String(http.StatusNotFound, "not found")
		return
	}

	c.File(p)
}

// resolve maps a request path to a file below the build directory.
// Directories resolve to their index.html.
func (api *serveAPI) resolve(urlPath string) (string, bool) {
	p := filepath.Join(api.opts.BuildDirectory, filepath.FromSlash(path.Clean("/"+urlPath)))

	info, err := os.Stat(p)
	if err == nil && info.IsDir() {
		p = filepath.Join(p, "index.html")
		info, err = os.Stat(p)
	}

	if err != nil || info.IsDir() {
		return "", false
	}

	return p, true
}
