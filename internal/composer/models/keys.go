package models

import (
	"fmt"
	"strings"
)

// EntryKind distinguishes what a cached payload is.
type EntryKind string

const (
	EntryPlate     EntryKind = "plate"
	EntryLayer     EntryKind = "layer"
	EntryComposite EntryKind = "composite"
)

// PlateCategory is the asset folder holding plates for each view.
const PlateCategory = "plate"

// Asset file extensions in the origin store.
const (
	PlateExt = "jpg"
	LayerExt = "png"
)

// CacheDir is the origin store folder holding cached artifacts.
const CacheDir = "cache"

// EntryKey addresses a payload in both cache tiers. Name is the origin asset
// key for plates and layers, and the fingerprint for composites.
type EntryKey struct {
	Kind EntryKind
	Name string
	Ext  string
}

func (k EntryKey) String() string {
	return fmt.Sprintf("%s:%s.%s", k.Kind, k.Name, k.Ext)
}

// AssetKey builds {namespace}/{view}/{category}/{sku}.{ext}.
func AssetKey(namespace string, view View, category, sku, ext string) string {
	return joinKey(namespace, view.String(), category, sku+"."+ext)
}

// PlateKey addresses the plate for a view.
func PlateKey(namespace string, view View, plate string) string {
	return AssetKey(namespace, view, PlateCategory, plate, PlateExt)
}

// LayerKey addresses a layer asset for a view.
func LayerKey(namespace string, view View, layer Layer) string {
	return AssetKey(namespace, view, layer.Kind.String(), layer.Sku.String(), LayerExt)
}

// CachedArtifactKey builds {namespace}/cache/{name}.{ext}.
func CachedArtifactKey(namespace, name, ext string) string {
	return joinKey(namespace, CacheDir, name+"."+ext)
}

func joinKey(parts ...string) string {
	nonEmpty := parts[:0:0]
	for _, p := range parts {
		if p = strings.Trim(p, "/"); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "/")
}

// PlateEntry addresses the plate of a view in the cache tiers.
func PlateEntry(view View) EntryKey {
	return EntryKey{Kind: EntryPlate, Name: joinKey(view.String(), PlateCategory, view.Plate()), Ext: PlateExt}
}

// LayerEntry addresses a layer asset in the cache tiers.
func LayerEntry(view View, layer Layer) EntryKey {
	return EntryKey{Kind: EntryLayer, Name: joinKey(view.String(), layer.Kind.String(), layer.Sku.String()), Ext: LayerExt}
}

// CompositeEntry addresses a rendered composite by fingerprint.
func CompositeEntry(fingerprint string, format Format) EntryKey {
	return EntryKey{Kind: EntryComposite, Name: fingerprint, Ext: format.Ext()}
}

// OriginKey maps an entry to its key in the origin store under namespace.
// Assets live at {namespace}/{view}/{category}/{sku}.{ext}; composites under
// the cache folder.
func OriginKey(namespace string, key EntryKey) string {
	if key.Kind == EntryComposite {
		return CachedArtifactKey(namespace, key.Name, key.Ext)
	}
	return joinKey(namespace, key.Name+"."+key.Ext)
}
