package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var dataFS embed.FS

const defaultPath = "data/catalog.yaml"

// All is the category sentinel that matches every entry.
const All = "全部"

// Product is a sellable offering shown on the products page.
type Product struct {
	ID          int      `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Category    string   `yaml:"category" json:"category"`
	Features    []string `yaml:"features" json:"features"`
	Price       string   `yaml:"price" json:"price"`
	Image       string   `yaml:"image" json:"image"`
	Rating      float64  `yaml:"rating" json:"rating"`
}

// Download is a file offered in the download center.
type Download struct {
	ID          int      `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Version     string   `yaml:"version" json:"version,omitempty"`
	FileSize    string   `yaml:"fileSize" json:"fileSize"`
	Downloads   int      `yaml:"downloads" json:"downloads"`
	UpdatedAt   string   `yaml:"updatedAt" json:"updatedAt"`
	Category    string   `yaml:"category" json:"category"`
	Platform    []string `yaml:"platform" json:"platform"`
	URL         string   `yaml:"url" json:"url"`
	FileType    string   `yaml:"fileType" json:"fileType,omitempty"`
}

// Video is an entry in the video center.
type Video struct {
	ID          int      `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Duration    string   `yaml:"duration" json:"duration"`
	Views       int      `yaml:"views" json:"views"`
	Likes       int      `yaml:"likes" json:"likes,omitempty"`
	Thumbnail   string   `yaml:"thumbnail" json:"thumbnail"`
	Category    string   `yaml:"category" json:"category"`
	URL         string   `yaml:"url" json:"url"`
	UploadDate  string   `yaml:"uploadDate" json:"uploadDate,omitempty"`
	Tags        []string `yaml:"tags" json:"tags,omitempty"`
}

// FAQ is a support question with its answer.
type FAQ struct {
	ID       int    `yaml:"id" json:"id"`
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
	Category string `yaml:"category" json:"category"`
}

// Catalog is the read-only site content. It is safe for concurrent use
// because nothing mutates it after Load.
type Catalog struct {
	Products  []Product  `yaml:"products" json:"products"`
	Downloads []Download `yaml:"downloads" json:"downloads"`
	Videos    []Video    `yaml:"videos" json:"videos"`
	FAQs      []FAQ      `yaml:"faqs" json:"faqs"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = LoadFS(dataFS, defaultPath)
	})
	return defaultCatalog, defaultErr
}

// LoadFS reads and parses the catalog stored at name in fsys.
func LoadFS(fsys fs.FS, name string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", name, err)
	}
	return Load(bytes.NewReader(data))
}

// Load parses a YAML catalog document and checks it for duplicate ids and
// entries missing their category.
func Load(r io.Reader) (*Catalog, error) {
	if r == nil {
		return nil, errors.New("catalog: missing reader")
	}
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return &c, nil
		}
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) check() error {
	var errs []error
	seen := map[string]map[int]bool{}
	add := func(kind string, id int, category string) {
		if seen[kind] == nil {
			seen[kind] = map[int]bool{}
		}
		if seen[kind][id] {
			errs = append(errs, fmt.Errorf("catalog: duplicate %s id %d", kind, id))
		}
		seen[kind][id] = true
		if category == "" {
			errs = append(errs, fmt.Errorf("catalog: %s %d has no category", kind, id))
		}
	}
	for _, p := range c.Products {
		add("product", p.ID, p.Category)
	}
	for _, d := range c.Downloads {
		add("download", d.ID, d.Category)
	}
	for _, v := range c.Videos {
		add("video", v.ID, v.Category)
	}
	for _, f := range c.FAQs {
		add("faq", f.ID, f.Category)
	}
	return errors.Join(errs...)
}
