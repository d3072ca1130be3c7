package memstore

import (
	"context"
	"encoding/hex"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"asset-variants/core/asset"

	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

// Calls counts the store operations received so far.
type Calls struct {
	Copy              int
	Delete            int
	Load              int
	Save              int
	Instantiate       int
	SetImportSettings int
	Commit            int
}

type entry struct {
	asset    asset.Asset
	settings asset.ImportSettings
	data     []byte
}

func (e *entry) clone(p string) *entry {
	out := &entry{
		asset:    e.asset,
		settings: e.settings.Clone(),
		data:     append([]byte(nil), e.data...),
	}
	out.asset.Path = p
	out.asset.Builtin = false
	return out
}

// Store is an in-memory asset store. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	entries  map[string]*entry
	builtin  []string
	open     map[*asset.Document]struct{}
	calls    Calls
	failures map[string]error
}

// New creates an empty store treating builtin as engine-owned locations.
// With no builtin paths, asset.DefaultBuiltinPaths is used.
func New(builtin ...string) *Store {
	if len(builtin) == 0 {
		builtin = asset.DefaultBuiltinPaths
	}
	return &Store{
		entries:  make(map[string]*entry),
		builtin:  builtin,
		open:     make(map[*asset.Document]struct{}),
		failures: make(map[string]error),
	}
}

// AddImage stores an image of the given kind and pixel size.
func (s *Store) AddImage(p string, kind asset.Kind, width, height int) {
	settings := asset.ImportSettings{TextureType: "default", Compression: asset.CompressionNone}
	if kind == asset.KindSprite {
		settings.TextureType = "sprite"
	}
	s.put(p, &entry{
		asset:    asset.Asset{Path: p, Kind: kind, Width: width, Height: height},
		settings: settings,
		data:     []byte(fmt.Sprintf("image:%s:%dx%d", p, width, height)),
	})
}

// AddAudio stores an audio clip sampled at sampleRate.
func (s *Store) AddAudio(p string, sampleRate int) {
	s.put(p, &entry{
		asset:    asset.Asset{Path: p, Kind: asset.KindAudio, SampleRate: sampleRate},
		settings: asset.ImportSettings{SampleRateSetting: "preserve", SampleRate: sampleRate},
		data:     []byte(fmt.Sprintf("audio:%s:%d", p, sampleRate)),
	})
}

// AddDocument stores a composite, data asset or scene with the given hierarchy.
func (s *Store) AddDocument(p string, kind asset.Kind, root *asset.Node) error {
	if !kind.HasDocument() {
		return fmt.Errorf("%s has no document: %w", kind, asset.ErrWrongKind)
	}
	data, err := yaml.Marshal(&asset.Document{Kind: kind, Root: root})
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", p, err)
	}
	s.put(p, &entry{asset: asset.Asset{Path: p, Kind: kind}, data: data})
	return nil
}

// SetSettings replaces the settings of p without reimporting.
func (s *Store) SetSettings(p string, settings asset.ImportSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[p]; ok {
		e.settings = settings.Clone()
	}
}

// Fail makes every later call of op on p return err. An empty p matches every path.
func (s *Store) Fail(op, p string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op+":"+p] = err
}

// Calls returns the operation counters.
func (s *Store) Calls() Calls {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// OpenSessions returns the number of loaded documents not yet unloaded.
func (s *Store) OpenSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.open)
}

// Paths returns every stored path in lexical order.
func (s *Store) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.entries))
	for p := range s.entries {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Document decodes the saved contents of p without opening an edit session.
func (s *Store) Document(p string) (*asset.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.document(p)
	if err != nil {
		return nil, err
	}
	return decode(p, e.data)
}

func (s *Store) put(p string, e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[p] = e
}

func (s *Store) fail(op, p string) error {
	if err, ok := s.failures[op+":"+p]; ok {
		return err
	}
	return s.failures[op+":"]
}

func (s *Store) lookup(p string) (*entry, error) {
	e, ok := s.entries[p]
	if !ok {
		return nil, fmt.Errorf("%s: %w", p, asset.ErrNotFound)
	}
	return e, nil
}

func (s *Store) document(p string) (*entry, error) {
	e, err := s.lookup(p)
	if err != nil {
		return nil, err
	}
	if !e.asset.Kind.HasDocument() {
		return nil, fmt.Errorf("%s is a %s asset: %w", p, e.asset.Kind, asset.ErrWrongKind)
	}
	return e, nil
}

func decode(p string, data []byte) (*asset.Document, error) {
	var doc asset.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", p, err)
	}
	doc.Path = p
	return &doc, nil
}

func (s *Store) Stat(_ context.Context, p string) (asset.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("stat", p); err != nil {
		return asset.Asset{}, err
	}
	e, err := s.lookup(p)
	if err != nil {
		return asset.Asset{}, err
	}
	a := e.asset
	a.Builtin = asset.IsBuiltinPath(p, s.builtin)
	return a, nil
}

func (s *Store) Exists(_ context.Context, p string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[p]
	return ok, nil
}

func (s *Store) List(_ context.Context, prefix string) ([]asset.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix = strings.TrimSuffix(prefix, "/")

	var out []asset.Asset
	for p, e := range s.entries {
		if prefix != "" && p != prefix && !strings.HasPrefix(p, prefix+"/") {
			continue
		}
		out = append(out, e.asset)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (s *Store) Copy(_ context.Context, src, dst string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.Copy++
	if err := s.fail("copy", src); err != nil {
		return err
	}
	e, err := s.lookup(src)
	if err != nil {
		return err
	}
	s.entries[dst] = e.clone(dst)
	return nil
}

func (s *Store) Delete(_ context.Context, p string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.Delete++
	if err := s.fail("delete", p); err != nil {
		return err
	}
	if _, err := s.lookup(p); err != nil {
		return err
	}
	delete(s.entries, p)
	return nil
}

func (s *Store) Load(_ context.Context, p string) (*asset.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.Load++
	if err := s.fail("load", p); err != nil {
		return nil, err
	}
	e, err := s.document(p)
	if err != nil {
		return nil, err
	}
	doc, err := decode(p, e.data)
	if err != nil {
		return nil, err
	}
	s.open[doc] = struct{}{}
	return doc, nil
}

func (s *Store) Save(_ context.Context, doc *asset.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.Save++
	if err := s.fail("save", doc.Path); err != nil {
		return err
	}
	e, err := s.document(doc.Path)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", doc.Path, err)
	}
	e.data = data
	return nil
}

func (s *Store) Unload(doc *asset.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.open, doc)
}

func (s *Store) Instantiate(_ context.Context, p string) (*asset.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.Instantiate++
	e, err := s.document(p)
	if err != nil {
		return nil, err
	}
	if e.asset.Kind != asset.KindComposite {
		return nil, fmt.Errorf("%s is a %s asset: %w", p, e.asset.Kind, asset.ErrWrongKind)
	}
	return &asset.Node{
		Name:      strings.TrimSuffix(path.Base(p), path.Ext(p)),
		Source:    p,
		Transform: asset.IdentityTransform(),
	}, nil
}

func (s *Store) ImportSettings(_ context.Context, p string) (asset.ImportSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.lookup(p)
	if err != nil {
		return asset.ImportSettings{}, err
	}
	return e.settings.Clone(), nil
}

// SetImportSettings stores settings and reimports p: images are clamped to
// the maximum size and audio takes the overridden sample rate.
func (s *Store) SetImportSettings(_ context.Context, p string, settings asset.ImportSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.SetImportSettings++
	if err := s.fail("settings", p); err != nil {
		return err
	}
	e, err := s.lookup(p)
	if err != nil {
		return err
	}
	e.settings = settings.Clone()

	switch {
	case e.asset.Kind.IsImage() && settings.MaxSize > 0:
		if m := e.asset.MaxDimension(); m > settings.MaxSize {
			e.asset.Width = e.asset.Width * settings.MaxSize / m
			e.asset.Height = e.asset.Height * settings.MaxSize / m
		}
	case e.asset.Kind == asset.KindAudio && settings.SampleRateSetting == "override":
		e.asset.SampleRate = settings.SampleRate
	}
	return nil
}

func (s *Store) Commit(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.Commit++
	return s.fail("commit", "")
}

// Digest returns the BLAKE3 digest of the stored contents of p.
func (s *Store) Digest(_ context.Context, p string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.lookup(p)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(e.data)
	return hex.EncodeToString(sum[:]), nil
}

var (
	_ asset.Store    = (*Store)(nil)
	_ asset.Digester = (*Store)(nil)
)
