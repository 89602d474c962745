package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/jaennil/guide_helper/raster/internal/client/catalog"
	"github.com/jaennil/guide_helper/raster/internal/entity"
	"github.com/jaennil/guide_helper/raster/internal/layercache"
	"github.com/jaennil/guide_helper/raster/internal/mapview"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
)

const sessionHelp = "commands: list, toggle <id>, delete <id>, state, wait, quit"

type layerCatalog interface {
	ListLayers(ctx context.Context) ([]entity.Layer, error)
	DeleteLayer(ctx context.Context, id int64) error
}

// repl drives a layer cache manager from line commands. Load failures arrive
// on a manager goroutine, so all output goes through printf.
type repl struct {
	catalog layerCatalog
	manager *layercache.Manager
	view    *mapview.Session
	layers  map[int64]entity.Layer

	outMu sync.Mutex
	out   io.Writer
}

func newREPL(cat layerCatalog, loader layercache.Loader, out io.Writer, l logger.Logger) *repl {
	r := &repl{
		catalog: cat,
		view:    mapview.NewSession(l),
		layers:  make(map[int64]entity.Layer),
		out:     out,
	}
	r.manager = layercache.NewManager(loader, r.view, r.notice, l)
	return r
}

func (r *repl) printf(format string, args ...any) {
	r.outMu.Lock()
	defer r.outMu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}

func (r *repl) notice(err error) {
	r.printf("! %v\n", err)
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	defer func() {
		r.manager.Clear()
		r.manager.Wait()
	}()

	if err := r.refresh(ctx); err != nil {
		return err
	}
	r.printf("%d layers in catalog, %s\n", len(r.layers), sessionHelp)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch cmd, args := fields[0], fields[1:]; cmd {
		case "list", "ls":
			r.list(ctx)
		case "toggle", "t":
			r.toggle(ctx, args)
		case "delete", "rm":
			r.remove(ctx, args)
		case "state":
			r.state()
		case "wait":
			r.manager.Wait()
			r.printf("no loads in flight\n")
		case "quit", "exit":
			return nil
		case "help":
			r.printf("%s\n", sessionHelp)
		default:
			r.printf("unknown command %q, %s\n", cmd, sessionHelp)
		}
	}

	return scanner.Err()
}

// refresh reloads the catalog and evicts layers that disappeared from it.
func (r *repl) refresh(ctx context.Context) error {
	layers, err := r.catalog.ListLayers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list layers: %w", err)
	}

	fresh := make(map[int64]entity.Layer, len(layers))
	for _, l := range layers {
		fresh[l.ID] = l
	}
	for _, id := range r.manager.Tracked() {
		if _, ok := fresh[id]; !ok {
			r.manager.Evict(id)
		}
	}
	r.layers = fresh
	return nil
}

func (r *repl) list(ctx context.Context) {
	if err := r.refresh(ctx); err != nil {
		r.printf("! %v\n", err)
		return
	}

	ids := make([]int64, 0, len(r.layers))
	for id := range r.layers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		r.printf("%d\t%s\t%s\n", id, r.layers[id].Name, r.manager.State(id))
	}
}

func (r *repl) toggle(ctx context.Context, args []string) {
	l, ok := r.lookup(args)
	if !ok {
		return
	}

	state := r.manager.Toggle(ctx, l)
	r.printf("layer %d: %s\n", l.ID, state)
}

func (r *repl) remove(ctx context.Context, args []string) {
	l, ok := r.lookup(args)
	if !ok {
		return
	}

	if err := r.catalog.DeleteLayer(ctx, l.ID); err != nil && !errors.Is(err, catalog.ErrNotFound) {
		r.printf("! failed to delete layer %d: %v\n", l.ID, err)
		return
	}

	r.manager.Evict(l.ID)
	delete(r.layers, l.ID)
	r.printf("layer %d deleted\n", l.ID)
}

func (r *repl) state() {
	snap := r.view.Snapshot()

	r.printf("overlays: [%s]\n", strings.Join(snap.Overlays, " "))
	r.printf("center: %.6f,%.6f zoom: %d\n", snap.Center.Lat, snap.Center.Lon, snap.Zoom)
	if snap.Viewport != nil {
		r.printf("viewport: %s\n", snap.Viewport)
	}
}

func (r *repl) lookup(args []string) (entity.Layer, bool) {
	if len(args) != 1 {
		r.printf("expected one layer id\n")
		return entity.Layer{}, false
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		r.printf("layer id should be integer\n")
		return entity.Layer{}, false
	}

	l, ok := r.layers[id]
	if !ok {
		r.printf("unknown layer %d, try list\n", id)
		return entity.Layer{}, false
	}
	return l, true
}
