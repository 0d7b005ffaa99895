package runtime

import (
	"io/fs"
	"path"
	"strings"
	"sync"
)

// Loader loads a resource for a path.
type Loader func(path string) (Value, error)

// ResourceSaver is implemented by hosts which persist saved resources.
type ResourceSaver interface {
	SaveResource(path string, v Value) error
}

// ResourceCache caches loaded resources by path.
type ResourceCache struct {
	mu     sync.Mutex
	cache  map[string]Value
	loader Loader
	rt     *Runtime
}

func newResourceCache(rt *Runtime) *ResourceCache {
	rc := &ResourceCache{cache: make(map[string]Value), rt: rt}
	rc.loader = rc.defaultLoader
	return rc
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".bmp": true,
	".svg": true, ".webp": true, ".tga": true, ".gif": true,
}

// fsPath converts a resource path (possibly with a `res://` prefix) into a
// path usable with package io/fs.
func fsPath(p string) string {
	p = strings.TrimPrefix(p, "res://")
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}

// defaultLoader creates textures for images and reads the text of every
// other resource.
func (rc *ResourceCache) defaultLoader(p string) (Value, error) {
	if imageExtensions[strings.ToLower(path.Ext(p))] {
		return &Texture{Path: p}, nil
	}
	data, err := fs.ReadFile(rc.rt.FS(), fsPath(p))
	if err != nil {
		return nil, &RuntimeError{Msg: "cannot load resource " + p, Cause: err}
	}
	return string(data), nil
}

// Load returns a cached resource or loads it.
func (rc *ResourceCache) Load(p string) (Value, error) {
	rc.mu.Lock()
	v, ok := rc.cache[p]
	rc.mu.Unlock()
	if ok {
		return v, nil
	}
	v, err := rc.loader(p)
	if err != nil {
		tracer().Errorf("%v", err)
		return nil, err
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if cached, ok := rc.cache[p]; ok { // another goroutine has been faster
		return cached, nil
	}
	rc.cache[p] = v
	tracer().Debugf("loaded resource %s", p)
	return v, nil
}

// Preload is identical to Load.
func (rc *ResourceCache) Preload(p string) (Value, error) {
	return rc.Load(p)
}

// Save stores a resource into the cache. If the host is a ResourceSaver, it
// is asked to persist the resource.
func (rc *ResourceCache) Save(v Value, p string) error {
	rc.mu.Lock()
	rc.cache[p] = v
	rc.mu.Unlock()
	if saver, ok := rc.rt.Host.(ResourceSaver); ok {
		return saver.SaveResource(p, v)
	}
	return nil
}

// Cached checks if a resource is in the cache.
func (rc *ResourceCache) Cached(p string) bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	_, ok := rc.cache[p]
	return ok
}

// Evict removes a resource from the cache.
func (rc *ResourceCache) Evict(p string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	delete(rc.cache, p)
}
