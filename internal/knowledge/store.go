package knowledge

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Embedded defaults. A configured data directory overrides individual files
// by name.
//
//go:embed data/*.json
var embedded embed.FS

// Document file names, also the override names inside the data directory.
const (
	principlesFile     = "principles.json"
	learningsFile      = "learnings.json"
	outputFormatFile   = "output_format.json"
	financeGuideFile   = "finance_extraction.json"
	sectionMappingFile = "section_mapping.json"
)

// LoadError reports a knowledge document that is missing or not parseable.
// It is fatal to any operation needing that document: not retried, not
// recovered.
type LoadError struct {
	Document string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading knowledge document %s: %v", e.Document, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// lazy holds one document behind a single-initialization guard. Load runs
// at most once; the outcome (value or error) is cached for the process
// lifetime.
type lazy[T any] struct {
	once sync.Once
	val  *T
	err  error
}

func (l *lazy[T]) get(load func() (*T, error)) (*T, error) {
	l.once.Do(func() {
		l.val, l.err = load()
	})
	return l.val, l.err
}

// Store provides load-once access to the knowledge documents. Construct it
// once at startup and pass the handle to every consumer.
//
// Store is safe for concurrent use by multiple goroutines.
type Store struct {
	dataDir string
	logger  *slog.Logger

	principles     lazy[PrincipleSet]
	learnings      lazy[LearningSet]
	outputFormat   lazy[json.RawMessage]
	financeGuide   lazy[FinanceExtractionGuide]
	sectionMapping lazy[SectionMappingGuide]
}

// StoreConfig configures a knowledge store.
type StoreConfig struct {
	DataDir string       // Optional: directory whose files override the embedded documents
	Logger  *slog.Logger // Optional: defaults to slog.Default()
}

// NewStore creates a knowledge store. No document is read until first use.
func NewStore(cfg StoreConfig) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dataDir: cfg.DataDir, logger: logger}
}

// read returns the raw bytes for a document, preferring a data-directory
// override over the embedded copy.
func (s *Store) read(name string) ([]byte, error) {
	if s.dataDir != "" {
		path := filepath.Join(s.dataDir, name)
		b, err := os.ReadFile(path)
		if err == nil {
			s.logger.Debug("loaded knowledge document override", "document", name, "path", path)
			return b, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return embedded.ReadFile("data/" + name)
}

// loadInto reads and parses one document into dst.
func (s *Store) loadInto(name string, dst any) error {
	b, err := s.read(name)
	if err != nil {
		return &LoadError{Document: name, Err: err}
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return &LoadError{Document: name, Err: err}
	}
	s.logger.Debug("knowledge document loaded", "document", name, "bytes", len(b))
	return nil
}

// Principles returns the commercial-principles document.
func (s *Store) Principles() (*PrincipleSet, error) {
	return s.principles.get(func() (*PrincipleSet, error) {
		var doc PrincipleSet
		if err := s.loadInto(principlesFile, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	})
}

// Learnings returns the learned-corrections document.
func (s *Store) Learnings() (*LearningSet, error) {
	return s.learnings.get(func() (*LearningSet, error) {
		var doc LearningSet
		if err := s.loadInto(learningsFile, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	})
}

// OutputFormat returns the output-format spec verbatim. It is never
// filtered, so it stays an opaque JSON value.
func (s *Store) OutputFormat() (json.RawMessage, error) {
	raw, err := s.outputFormat.get(func() (*json.RawMessage, error) {
		var doc json.RawMessage
		if err := s.loadInto(outputFormatFile, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	})
	if err != nil {
		return nil, err
	}
	return *raw, nil
}

// FinanceGuide returns the finance-extraction guide.
func (s *Store) FinanceGuide() (*FinanceExtractionGuide, error) {
	return s.financeGuide.get(func() (*FinanceExtractionGuide, error) {
		var doc FinanceExtractionGuide
		if err := s.loadInto(financeGuideFile, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	})
}

// SectionMapping returns the section/principle mapping guide.
func (s *Store) SectionMapping() (*SectionMappingGuide, error) {
	return s.sectionMapping.get(func() (*SectionMappingGuide, error) {
		var doc SectionMappingGuide
		if err := s.loadInto(sectionMappingFile, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	})
}
