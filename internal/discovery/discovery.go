package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"

	"picturereel/internal/domain"
	"picturereel/internal/eventbus"
)

// maxDepth limits how far below a root the scan descends
const maxDepth = 5

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"__pycache__":  true,
	"thumbnails":   true,
}

// DiscoveryService finds pictures in the filesystem
type DiscoveryService interface {
	StartScan(ctx context.Context, roots []string) error
	StopScan()
}

// discoveryService is the concrete implementation
type discoveryService struct {
	bus        eventbus.EventBus
	mu         sync.Mutex
	isScanning bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewDiscoveryService creates a new discovery service that also answers
// ScanRequested events
func NewDiscoveryService(bus eventbus.EventBus) DiscoveryService {
	ds := &discoveryService{
		bus: bus,
	}

	bus.Subscribe(eventbus.EventScanRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ScanRequestedEvent); ok {
			if err := ds.StartScan(context.Background(), event.Paths); err != nil {
				log.Printf("Scan request ignored: %v", err)
			}
		}
	})

	return ds
}

// StartScan scans roots in the background. Each root produces one
// PicturesDiscovered event.
func (ds *discoveryService) StartScan(ctx context.Context, roots []string) error {
	ds.mu.Lock()
	if ds.isScanning {
		ds.mu.Unlock()
		return fmt.Errorf("scan already in progress")
	}
	ds.isScanning = true

	scanCtx, cancel := context.WithCancel(ctx)
	ds.cancelFunc = cancel
	ds.mu.Unlock()

	ds.bus.Publish(eventbus.ScanStartedEvent{Paths: roots})

	ds.wg.Add(1)
	go func() {
		defer ds.wg.Done()
		found := 0
		defer func() {
			cancel()
			ds.mu.Lock()
			ds.isScanning = false
			ds.cancelFunc = nil
			ds.mu.Unlock()

			ds.bus.Publish(eventbus.ScanCompletedEvent{PicturesFound: found})
		}()

		for _, root := range roots {
			select {
			case <-scanCtx.Done():
				return
			default:
			}

			pictures, err := Scan(scanCtx, root)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					log.Printf("Error scanning directory %s: %v", root, err)
					ds.bus.Publish(eventbus.ErrorEvent{
						Message: fmt.Sprintf("Failed to scan %s", root),
						Err:     err,
					})
				}
				continue
			}
			found += len(pictures)
			ds.bus.Publish(eventbus.PicturesDiscoveredEvent{Root: root, Pictures: pictures})
		}
	}()

	return nil
}

// StopScan stops any ongoing scan
func (ds *discoveryService) StopScan() {
	ds.mu.Lock()
	if ds.cancelFunc != nil {
		ds.cancelFunc()
	}
	ds.mu.Unlock()

	ds.wg.Wait()
}

// Scan walks root and returns its pictures ordered by path
func Scan(ctx context.Context, root string) ([]domain.Picture, error) {
	var pictures []domain.Picture

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if path == root {
				return err
			}
			log.Printf("Error walking path %s: %v", path, err)
			return nil
		}

		if d.IsDir() {
			if skipDir(root, path) {
				return fs.SkipDir
			}
			return nil
		}

		if !IsImage(path) {
			return nil
		}
		pictures = append(pictures, domain.Picture{
			Source:      path,
			Description: Describe(path),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(pictures, func(i, j int) bool {
		return pictures[i].Source < pictures[j].Source
	})
	return pictures, nil
}

// skipDir reports whether a scan of root leaves the directory at path out
func skipDir(root, path string) bool {
	if path == root {
		return false
	}
	relPath, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(relPath, "..") {
		return true
	}
	if strings.Count(relPath, string(filepath.Separator)) >= maxDepth {
		return true
	}
	name := filepath.Base(path)
	return strings.HasPrefix(name, ".") || skipDirs[name]
}

// IsImage reports whether path has a known image extension
func IsImage(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// Describe derives a readable caption from a file name:
// "harbour_at-dusk.jpg" becomes "Harbour at dusk".
func Describe(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = strings.Map(func(r rune) rune {
		if r == '_' || r == '-' || r == '.' {
			return ' '
		}
		return r
	}, name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return filepath.Base(path)
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
