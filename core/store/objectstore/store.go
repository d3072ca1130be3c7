package objectstore

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"

	"asset-variants/core/asset"
	"asset-variants/core/media"
	"asset-variants/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const yamlContentType = "application/x-yaml"

// Store is an asset store backed by a storage bucket.
type Store struct {
	client  storage.Client
	bucket  string
	builtin []string
	logger  *zap.Logger

	mu    sync.Mutex
	metas map[string]*meta
	dirty map[string]struct{}
	open  map[*asset.Document]struct{}
}

// New creates a store over bucket. With no builtin paths, asset.DefaultBuiltinPaths is used.
func New(client storage.Client, bucket string, logger *zap.Logger, builtin ...string) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(builtin) == 0 {
		builtin = asset.DefaultBuiltinPaths
	}
	return &Store{
		client:  client,
		bucket:  bucket,
		builtin: builtin,
		logger:  logger,
		metas:   make(map[string]*meta),
		dirty:   make(map[string]struct{}),
		open:    make(map[*asset.Document]struct{}),
	}
}

func notFound(p string, err error) error {
	if storage.IsNotFound(err) {
		return fmt.Errorf("%s: %w", p, asset.ErrNotFound)
	}
	return err
}

func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	reader, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, notFound(key, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, notFound(key, err)
	}
	return data, nil
}

func (s *Store) put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// meta returns the cached sidecar of p, reading or inferring it on first use.
// Callers must hold s.mu.
func (s *Store) meta(ctx context.Context, p string) (*meta, error) {
	if m, ok := s.metas[p]; ok {
		return m, nil
	}

	data, err := s.get(ctx, SidecarKey(p))
	switch {
	case err == nil:
		var m meta
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse sidecar of %s: %w", p, err)
		}
		s.metas[p] = &m
		return &m, nil
	case !errors.Is(err, asset.ErrNotFound):
		return nil, fmt.Errorf("failed to read sidecar of %s: %w", p, err)
	}

	m, err := s.probe(ctx, p)
	if err != nil {
		return nil, err
	}
	s.metas[p] = m
	return m, nil
}

// probe builds the sidecar of an asset that has none.
func (s *Store) probe(ctx context.Context, p string) (*meta, error) {
	if _, err := s.client.StatObject(ctx, s.bucket, p, minio.StatObjectOptions{}); err != nil {
		return nil, notFound(p, err)
	}

	m := &meta{Kind: asset.KindFromPath(p)}
	switch {
	case m.Kind.IsImage():
		data, err := s.get(ctx, p)
		if err != nil {
			return nil, err
		}
		if m.Width, m.Height, err = media.ImageSize(data); err != nil {
			s.logger.Warn("Unreadable image", zap.String("path", p), zap.Error(err))
		}
		m.Import = asset.ImportSettings{TextureType: "default", Compression: asset.CompressionNone}
	case m.Kind == asset.KindAudio && strings.EqualFold(path.Ext(p), ".wav"):
		data, err := s.get(ctx, p)
		if err != nil {
			return nil, err
		}
		if m.SampleRate, err = media.WAVSampleRate(data); err != nil {
			s.logger.Warn("Unreadable audio", zap.String("path", p), zap.Error(err))
		}
		m.Import = asset.ImportSettings{SampleRateSetting: "preserve", SampleRate: m.SampleRate}
	}
	return m, nil
}

func (s *Store) Stat(ctx context.Context, p string) (asset.Asset, error) {
	if asset.IsBuiltinPath(p, s.builtin) {
		return asset.Asset{Path: p, Kind: asset.KindFromPath(p), Builtin: true}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.meta(ctx, p)
	if err != nil {
		return asset.Asset{}, err
	}
	return m.asset(p), nil
}

func (s *Store) Exists(ctx context.Context, p string) (bool, error) {
	s.mu.Lock()
	if _, ok := s.metas[p]; ok {
		s.mu.Unlock()
		return true, nil
	}
	s.mu.Unlock()

	_, err := s.client.StatObject(ctx, s.bucket, p, minio.StatObjectOptions{})
	if storage.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", p, err)
	}
	return true, nil
}

// List returns the assets under prefix from a single recursive listing.
// Kinds come from cached sidecars or file extensions; nothing is probed.
func (s *Store) List(ctx context.Context, prefix string) ([]asset.Asset, error) {
	opts := minio.ListObjectsOptions{Recursive: true}
	if prefix = strings.TrimSuffix(prefix, "/"); prefix != "" {
		opts.Prefix = prefix + "/"
	}

	var out []asset.Asset
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		if obj.Key == "" || strings.HasSuffix(obj.Key, "/") || IsInternal(obj.Key) {
			continue
		}

		s.mu.Lock()
		m, ok := s.metas[obj.Key]
		s.mu.Unlock()
		if ok {
			out = append(out, m.asset(obj.Key))
			continue
		}
		out = append(out, asset.Asset{Path: obj.Key, Kind: asset.KindFromPath(obj.Key)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Copy duplicates src server side. The sidecar of dst is written on Commit.
func (s *Store) Copy(ctx context.Context, src, dst string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.meta(ctx, src)
	if err != nil {
		return err
	}

	_, err = s.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: s.bucket, Object: dst},
		minio.CopySrcOptions{Bucket: s.bucket, Object: src},
	)
	if err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, notFound(src, err))
	}

	s.metas[dst] = m.clone()
	s.dirty[dst] = struct{}{}
	return nil
}

// Delete removes p together with its sidecar and imported artifact.
func (s *Store) Delete(ctx context.Context, p string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := []string{p, SidecarKey(p)}
	if m, err := s.meta(ctx, p); err == nil && m.Imported != "" {
		keys = append(keys, m.Imported)
	}
	for _, key := range keys {
		if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil && !storage.IsNotFound(err) {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}

	delete(s.metas, p)
	delete(s.dirty, p)
	return nil
}

func (s *Store) document(ctx context.Context, p string) (*asset.Document, error) {
	m, err := s.meta(ctx, p)
	if err != nil {
		return nil, err
	}
	if !m.Kind.HasDocument() {
		return nil, fmt.Errorf("%s is a %s asset: %w", p, m.Kind, asset.ErrWrongKind)
	}

	data, err := s.get(ctx, p)
	if err != nil {
		return nil, err
	}
	var doc asset.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", p, err)
	}
	doc.Path = p
	if doc.Kind == "" {
		doc.Kind = m.Kind
	}
	return &doc, nil
}

func (s *Store) Load(ctx context.Context, p string) (*asset.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.document(ctx, p)
	if err != nil {
		return nil, err
	}
	s.open[doc] = struct{}{}
	return doc, nil
}

func (s *Store) Save(ctx context.Context, doc *asset.Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", doc.Path, err)
	}
	return s.put(ctx, doc.Path, data, yamlContentType)
}

func (s *Store) Unload(doc *asset.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.open, doc)
}

func (s *Store) Instantiate(ctx context.Context, p string) (*asset.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.meta(ctx, p)
	if err != nil {
		return nil, err
	}
	if m.Kind != asset.KindComposite {
		return nil, fmt.Errorf("%s is a %s asset: %w", p, m.Kind, asset.ErrWrongKind)
	}
	return &asset.Node{
		Name:      strings.TrimSuffix(path.Base(p), path.Ext(p)),
		Source:    p,
		Transform: asset.IdentityTransform(),
	}, nil
}

func (s *Store) ImportSettings(ctx context.Context, p string) (asset.ImportSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.meta(ctx, p)
	if err != nil {
		return asset.ImportSettings{}, err
	}
	return m.Import.Clone(), nil
}

// SetImportSettings stores settings and reimports p. Images are bounded to
// MaxSize and re-encoded; WAV audio is resampled when the rate is overridden.
func (s *Store) SetImportSettings(ctx context.Context, p string, settings asset.ImportSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.meta(ctx, p)
	if err != nil {
		return err
	}

	var (
		data []byte
		ext  string
	)
	switch {
	case m.Kind.IsImage():
		src, err := s.get(ctx, p)
		if err != nil {
			return err
		}
		data, ext, err = media.Reimport(src, settings.MaxSize, settings.Compression == asset.CompressionCompressed, settings.Quality)
		if err != nil {
			return fmt.Errorf("failed to reimport %s: %w", p, err)
		}
	case m.Kind == asset.KindAudio && settings.SampleRateSetting == "override" && strings.EqualFold(path.Ext(p), ".wav"):
		src, err := s.get(ctx, p)
		if err != nil {
			return err
		}
		data, err = media.ResampleWAV(src, settings.SampleRate, media.ResampleQuality(settings.AudioQuality))
		if err != nil {
			return fmt.Errorf("failed to reimport %s: %w", p, err)
		}
		ext = ".wav"
	default:
		s.logger.Debug("Settings stored without reimport", zap.String("path", p), zap.String("kind", string(m.Kind)))
	}

	if data != nil {
		key := importedKey(p, ext)
		if err := s.put(ctx, key, data, contentType(ext)); err != nil {
			return err
		}
		m.Imported = key
	}

	m.Import = settings.Clone()
	s.dirty[p] = struct{}{}
	return nil
}

// Commit writes every pending sidecar.
func (s *Store) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.dirty))
	for p := range s.dirty {
		keys = append(keys, p)
	}
	sort.Strings(keys)

	for _, p := range keys {
		data, err := yaml.Marshal(s.metas[p])
		if err != nil {
			return fmt.Errorf("failed to encode sidecar of %s: %w", p, err)
		}
		if err := s.put(ctx, SidecarKey(p), data, yamlContentType); err != nil {
			return err
		}
		delete(s.dirty, p)
	}

	// The sidecar cache spans one top-level call. Later calls re-read the
	// bucket and see changes made by other writers.
	s.metas = make(map[string]*meta)

	s.logger.Debug("Store committed", zap.Int("sidecars", len(keys)))
	return nil
}

// Digest returns the BLAKE3 digest of the object at p.
func (s *Store) Digest(ctx context.Context, p string) (string, error) {
	data, err := s.get(ctx, p)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func contentType(ext string) string {
	switch ext {
	case ".jpg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".wav":
		return "audio/wav"
	}
	return "application/octet-stream"
}

var (
	_ asset.Store    = (*Store)(nil)
	_ asset.Digester = (*Store)(nil)
)
